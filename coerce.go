// coerce.go: Type-directed value coercion for Blic
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agilira/go-errors"
)

// The boolean literal sets are fixed and case-sensitive. Anything outside
// them is a hard coercion error, never a guess.
var (
	boolTrueLiterals  = map[string]bool{"true": true, "1": true, "yes": true}
	boolFalseLiterals = map[string]bool{"false": true, "0": true, "no": true}
)

// coerceValue converts a raw token into its declared semantic type:
// strings pass through, numbers parse as strict decimal float64, booleans
// accept exactly true/1/yes and false/0/no.
func coerceValue(raw string, kind ValueKind) (any, error) {
	switch kind {
	case KindString:
		return raw, nil
	case KindNumber:
		n, err := parseDecimal(raw)
		if err != nil {
			return nil, err
		}
		return n, nil
	case KindBool:
		b, err := parseBool(raw)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, errors.New(ErrCodeInvalidType, fmt.Sprintf("unsupported value kind %d", kind))
	}
}

// parseDecimal is a strict, locale-independent decimal parse. Exponent
// notation is accepted; hex floats, underscores, Inf and NaN are not.
func parseDecimal(raw string) (float64, error) {
	if !isDecimalLiteral(raw) {
		return 0, errors.New(ErrCodeInvalidType, fmt.Sprintf("%q is not a number", raw))
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrap(err, ErrCodeInvalidType, fmt.Sprintf("%q is not a number", raw))
	}
	return n, nil
}

// parseBool maps the fixed literal sets onto bool.
func parseBool(raw string) (bool, error) {
	if boolTrueLiterals[raw] {
		return true, nil
	}
	if boolFalseLiterals[raw] {
		return false, nil
	}
	return false, errors.New(ErrCodeInvalidType,
		fmt.Sprintf("%q is not a boolean (expected true/1/yes or false/0/no)", raw))
}

// coercesToBool reports whether a raw token is an explicit boolean literal.
// The option parser uses it to decide whether the token following a boolean
// flag overrides the implicit true.
func coercesToBool(raw string) bool {
	return boolTrueLiterals[raw] || boolFalseLiterals[raw]
}

// isDecimalLiteral accepts [+-]digits[.digits][(e|E)[+-]digits] with at
// least one digit in the integer or fractional part.
func isDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	mantissa := s
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		exp := s[i+1:]
		if exp != "" && (exp[0] == '+' || exp[0] == '-') {
			exp = exp[1:]
		}
		if !allDigits(exp) || exp == "" {
			return false
		}
	}
	intPart, fracPart, dot := strings.Cut(mantissa, ".")
	if intPart == "" && (!dot || fracPart == "") {
		return false
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return false
	}
	return intPart != "" || fracPart != ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
