// token.go: Pure argv tokenizer for Blic
//
// Tokenization is a pure function of the raw argument list: identical argv
// always yields an identical token stream, independent of any schema or
// environment. All schema-aware decisions belong to the parsers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import "strings"

// TokenKind tags a Token variant.
type TokenKind int

const (
	// TokenArgument is a plain positional value.
	TokenArgument TokenKind = iota
	// TokenOptionFlag is a long or expanded short option name, without dashes.
	TokenOptionFlag
	// TokenOptionValue is a value attached to the preceding flag via "=".
	TokenOptionValue
	// TokenSeparator is the one-shot "--" marker.
	TokenSeparator
)

// Token is one element of the tokenized argument stream.
type Token struct {
	Kind  TokenKind
	Value string
}

// Tokenize converts raw process arguments into a token stream.
//
// Rules: "--" is a one-shot separator and every subsequent element becomes
// an Argument verbatim. "--name=value" splits on the first "=" into an
// OptionFlag plus an OptionValue; "--name" alone is just the flag. A single
// dash followed by clustered shorts expands each rune into its own
// OptionFlag ("-abc" becomes a, b, c); with "=", every rune before it
// expands and the value attaches to the last ("-ab=5" becomes a, b, then
// OptionValue 5). A token shaped like a bare negative number ("-5",
// "-2.5") is never flag-expanded and stays an Argument, so numeric values
// survive tokenization without schema knowledge.
func Tokenize(argv []string) []Token {
	tokens := make([]Token, 0, len(argv))
	verbatim := false

	for _, raw := range argv {
		if verbatim {
			tokens = append(tokens, Token{Kind: TokenArgument, Value: raw})
			continue
		}
		switch {
		case raw == "--":
			verbatim = true
			tokens = append(tokens, Token{Kind: TokenSeparator})

		case strings.HasPrefix(raw, "--"):
			name, value, attached := strings.Cut(raw[2:], "=")
			tokens = append(tokens, Token{Kind: TokenOptionFlag, Value: name})
			if attached {
				tokens = append(tokens, Token{Kind: TokenOptionValue, Value: value})
			}

		case strings.HasPrefix(raw, "-") && len(raw) > 1 && !isNegativeNumber(raw):
			cluster, value, attached := strings.Cut(raw[1:], "=")
			for _, r := range cluster {
				tokens = append(tokens, Token{Kind: TokenOptionFlag, Value: string(r)})
			}
			if attached {
				tokens = append(tokens, Token{Kind: TokenOptionValue, Value: value})
			}

		default:
			tokens = append(tokens, Token{Kind: TokenArgument, Value: raw})
		}
	}
	return tokens
}

// isNegativeNumber reports whether the token is a bare negative decimal
// literal ("-5", "-3.14"). Such tokens are lexically indistinguishable
// from short-flag clusters; the fixed policy is that they are always
// candidate values, never flags.
func isNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	digits, frac, dot := s[1:], "", false
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		digits, frac, dot = digits[:i], digits[i+1:], true
	}
	if digits == "" || (dot && frac == "") {
		return false
	}
	for _, r := range digits + frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
