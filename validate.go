// validate.go: Composable validation engine for Blic
//
// Validators run against the final value of an option or argument, after
// coercion and defaulting. Rules accumulate in a fluent builder and are
// evaluated in declared order, short-circuiting on the first failure.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agilira/go-errors"
)

// Validator checks one typed value, yielding nil on pass or an error whose
// message is shown to the user on fail.
type Validator interface {
	Validate(value any) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(value any) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(value any) error {
	return f(value)
}

// RuleChain is a fluent builder of validation rules. It implements
// Validator itself, so a built chain attaches directly to a spec:
//
//	spec.Validator = blic.Rules().NonEmpty().MaxLength(64)
type RuleChain struct {
	rules []ValidatorFunc
}

// Rules starts an empty chain.
func Rules() *RuleChain {
	return &RuleChain{}
}

// Validate runs the rules in declared order, stopping at the first failure.
func (rc *RuleChain) Validate(value any) error {
	for _, rule := range rc.rules {
		if err := rule(value); err != nil {
			return err
		}
	}
	return nil
}

// Check appends an arbitrary named rule.
func (rc *RuleChain) Check(name string, fn func(value any) error) *RuleChain {
	rc.rules = append(rc.rules, func(v any) error {
		if err := fn(v); err != nil {
			return errors.Wrap(err, ErrCodeValidationFailed, name)
		}
		return nil
	})
	return rc
}

// NonEmpty rejects empty strings and empty variadic captures.
func (rc *RuleChain) NonEmpty() *RuleChain {
	rc.rules = append(rc.rules, func(v any) error {
		switch val := v.(type) {
		case string:
			if val == "" {
				return errors.New(ErrCodeValidationFailed, "value cannot be empty")
			}
		case []any:
			if len(val) == 0 {
				return errors.New(ErrCodeValidationFailed, "at least one value is required")
			}
		}
		return nil
	})
	return rc
}

// MinLength rejects strings shorter than n.
func (rc *RuleChain) MinLength(n int) *RuleChain {
	rc.rules = append(rc.rules, func(v any) error {
		if s, ok := v.(string); ok && len(s) < n {
			return errors.New(ErrCodeValidationFailed,
				fmt.Sprintf("value must be at least %d characters", n))
		}
		return nil
	})
	return rc
}

// MaxLength rejects strings longer than n.
func (rc *RuleChain) MaxLength(n int) *RuleChain {
	rc.rules = append(rc.rules, func(v any) error {
		if s, ok := v.(string); ok && len(s) > n {
			return errors.New(ErrCodeValidationFailed,
				fmt.Sprintf("value must be at most %d characters", n))
		}
		return nil
	})
	return rc
}

// Min rejects numbers below the bound.
func (rc *RuleChain) Min(bound float64) *RuleChain {
	rc.rules = append(rc.rules, func(v any) error {
		if n, ok := v.(float64); ok && n < bound {
			return errors.New(ErrCodeValidationFailed,
				fmt.Sprintf("value must be at least %v", bound))
		}
		return nil
	})
	return rc
}

// Max rejects numbers above the bound.
func (rc *RuleChain) Max(bound float64) *RuleChain {
	rc.rules = append(rc.rules, func(v any) error {
		if n, ok := v.(float64); ok && n > bound {
			return errors.New(ErrCodeValidationFailed,
				fmt.Sprintf("value must be at most %v", bound))
		}
		return nil
	})
	return rc
}

// OneOf rejects string values outside the given set.
func (rc *RuleChain) OneOf(choices ...string) *RuleChain {
	allowed := make(map[string]bool, len(choices))
	for _, c := range choices {
		allowed[c] = true
	}
	rc.rules = append(rc.rules, func(v any) error {
		if s, ok := v.(string); ok && !allowed[s] {
			return errors.New(ErrCodeValidationFailed,
				fmt.Sprintf("value must be one of: %s", strings.Join(choices, ", ")))
		}
		return nil
	})
	return rc
}

// Matches rejects strings that do not match the pattern. The pattern is
// compiled once at schema-construction time; a bad pattern panics, like any
// other schema bug.
func (rc *RuleChain) Matches(pattern string) *RuleChain {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(errors.Wrap(err, ErrCodeInvalidSchema, "invalid validation pattern "+pattern))
	}
	rc.rules = append(rc.rules, func(v any) error {
		if s, ok := v.(string); ok && !re.MatchString(s) {
			return errors.New(ErrCodeValidationFailed,
				fmt.Sprintf("value must match %s", pattern))
		}
		return nil
	})
	return rc
}
