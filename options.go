// options.go: Option parser for Blic
//
// Consumes flag tokens against a set of OptionSpecs, producing typed values
// and batched errors. Resolution precedence for every option is fixed:
// explicit flag, then environment fallback, then declared default, then a
// MissingRequired error when the option is required.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"fmt"
	"unicode/utf8"
)

// parsedOptions is the result of one option-parsing pass.
type parsedOptions struct {
	values    map[string]any  // long name -> coerced value
	explicit  map[string]bool // set from an actual flag token
	remaining []Token         // tokens the pass did not consume
	errs      *ErrorList
}

// flagLabel renders an option name the way the user types it.
func flagLabel(name string) string {
	if utf8.RuneCountInString(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// parseOptions walks the token stream consuming flags that match specs.
//
// Boolean options default to true when the flag appears bare; an
// immediately following token that coerces to boolean overrides that.
// Non-boolean options consume the immediately following OptionValue or
// Argument token; its absence is a hard "requires a value" error. Unknown
// flags either pass through to remaining (allowUnknown, the global pass
// before any command is known) or report UnknownOption. Tokens not
// consumed as flags or values pass through in order.
func parseOptions(tokens []Token, specs []OptionSpec, allowUnknown bool, env EnvLookup) parsedOptions {
	out := parsedOptions{
		values:   make(map[string]any),
		explicit: make(map[string]bool),
		errs:     &ErrorList{},
	}

	lookup := make(map[string]*OptionSpec, len(specs)*2)
	for i := range specs {
		lookup[specs[i].Name] = &specs[i]
		if specs[i].Short != "" {
			lookup[specs[i].Short] = &specs[i]
		}
	}

	seen := make(map[string]bool, len(specs))

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != TokenOptionFlag {
			out.remaining = append(out.remaining, tok)
			continue
		}

		spec, known := lookup[tok.Value]
		if !known {
			if allowUnknown {
				out.remaining = append(out.remaining, tok)
				if i+1 < len(tokens) && tokens[i+1].Kind == TokenOptionValue {
					out.remaining = append(out.remaining, tokens[i+1])
					i++
				}
			} else {
				out.errs.Add(UnknownOption, tok.Value,
					fmt.Sprintf("unknown option %s", flagLabel(tok.Value)))
				// Drop the attached value along with the flag it belonged to.
				if i+1 < len(tokens) && tokens[i+1].Kind == TokenOptionValue {
					i++
				}
			}
			continue
		}

		seen[spec.Name] = true
		label := flagLabel(spec.Name)

		if spec.Kind == KindBool {
			value := any(true)
			if i+1 < len(tokens) {
				next := tokens[i+1]
				switch {
				case next.Kind == TokenOptionValue:
					coerced, err := coerceValue(next.Value, KindBool)
					if err != nil {
						out.errs.Add(InvalidType, spec.Name,
							fmt.Sprintf("invalid value for %s: %s", label, err.Error()))
						i++
						continue
					}
					value = coerced
					i++
				case next.Kind == TokenArgument && coercesToBool(next.Value):
					value, _ = coerceValue(next.Value, KindBool)
					i++
				}
			}
			out.values[spec.Name] = value
			out.explicit[spec.Name] = true
			continue
		}

		if i+1 >= len(tokens) || (tokens[i+1].Kind != TokenOptionValue && tokens[i+1].Kind != TokenArgument) {
			out.errs.Add(MissingRequired, spec.Name,
				fmt.Sprintf("option %s requires a value", label))
			continue
		}
		i++
		coerced, err := coerceValue(tokens[i].Value, spec.Kind)
		if err != nil {
			out.errs.Add(InvalidType, spec.Name,
				fmt.Sprintf("invalid value for %s: %s", label, err.Error()))
			continue
		}
		out.values[spec.Name] = coerced
		out.explicit[spec.Name] = true
	}

	// Specs never mentioned on the command line resolve in declaration
	// order: environment fallback, then default, then MissingRequired.
	for i := range specs {
		spec := &specs[i]
		if seen[spec.Name] {
			continue
		}
		if spec.EnvVar != "" && env != nil {
			if raw, ok := env(spec.EnvVar); ok {
				coerced, err := coerceValue(raw, spec.Kind)
				if err != nil {
					out.errs.Add(InvalidType, spec.Name,
						fmt.Sprintf("invalid value for %s from %s: %s", flagLabel(spec.Name), spec.EnvVar, err.Error()))
				} else {
					out.values[spec.Name] = coerced
				}
				continue
			}
		}
		if spec.Default != nil {
			out.values[spec.Name] = normalizeDefault(spec.Default, spec.Kind)
			continue
		}
		if spec.Required {
			out.errs.Add(MissingRequired, spec.Name,
				fmt.Sprintf("missing required option %s", flagLabel(spec.Name)))
		}
	}

	// Validators run last, against the final value from whichever source won.
	for i := range specs {
		spec := &specs[i]
		value, present := out.values[spec.Name]
		if !present || spec.Validator == nil {
			continue
		}
		if err := spec.Validator.Validate(value); err != nil {
			out.errs.Add(ValidationFailed, spec.Name,
				fmt.Sprintf("invalid value for %s: %s", flagLabel(spec.Name), err.Error()))
		}
	}

	return out
}

// normalizeDefault widens untyped schema defaults to runtime value types,
// so a literal 5 declared for a number option behaves like 5.0.
func normalizeDefault(def any, kind ValueKind) any {
	if kind != KindNumber {
		return def
	}
	switch n := def.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return def
	}
}
