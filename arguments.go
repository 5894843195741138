// arguments.go: Positional argument parser for Blic
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import "fmt"

// parsedArgs is the result of one positional-parsing pass. rest holds
// surplus positionals beyond the declared specs.
type parsedArgs struct {
	values map[string]any
	rest   []string
	errs   *ErrorList
}

// parseArguments walks the specs in declaration order over the positional
// values. A non-variadic spec consumes exactly one value; a missing
// required spec is a MissingRequired error, a missing optional spec takes
// its default. The variadic spec, necessarily last, consumes the whole
// remainder, coercing each value independently; when required and the
// remainder is empty it still yields an empty collection plus the error.
// Validators run against the final value, after coercion and defaulting.
func parseArguments(positionals []string, specs []ArgumentSpec) parsedArgs {
	out := parsedArgs{
		values: make(map[string]any),
		errs:   &ErrorList{},
	}

	cursor := 0
	for i := range specs {
		spec := &specs[i]

		if spec.Variadic {
			collected := make([]any, 0, len(positionals)-cursor)
			for ; cursor < len(positionals); cursor++ {
				coerced, err := coerceValue(positionals[cursor], spec.Kind)
				if err != nil {
					out.errs.Add(InvalidType, spec.Name,
						fmt.Sprintf("invalid value for <%s>: %s", spec.Name, err.Error()))
					continue
				}
				collected = append(collected, coerced)
			}
			out.values[spec.Name] = collected
			if len(collected) == 0 && spec.Required {
				out.errs.Add(MissingRequired, spec.Name,
					fmt.Sprintf("missing required argument <%s>", spec.Name))
			}
			continue
		}

		if cursor < len(positionals) {
			coerced, err := coerceValue(positionals[cursor], spec.Kind)
			cursor++
			if err != nil {
				out.errs.Add(InvalidType, spec.Name,
					fmt.Sprintf("invalid value for <%s>: %s", spec.Name, err.Error()))
				continue
			}
			out.values[spec.Name] = coerced
			continue
		}

		if spec.Required {
			out.errs.Add(MissingRequired, spec.Name,
				fmt.Sprintf("missing required argument <%s>", spec.Name))
			continue
		}
		if spec.Default != nil {
			out.values[spec.Name] = normalizeDefault(spec.Default, spec.Kind)
		}
	}

	out.rest = positionals[cursor:]

	for i := range specs {
		spec := &specs[i]
		value, present := out.values[spec.Name]
		if !present || spec.Validator == nil {
			continue
		}
		if err := spec.Validator.Validate(value); err != nil {
			out.errs.Add(ValidationFailed, spec.Name,
				fmt.Sprintf("invalid value for <%s>: %s", spec.Name, err.Error()))
		}
	}

	return out
}
