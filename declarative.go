// declarative.go: YAML-declared schemas for Blic
//
// The same schema model the fluent builders produce can be loaded from a
// YAML document, with actions, middleware, and validators bound by
// registered name. The loader performs no file I/O; callers hand it bytes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"fmt"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// Registry supplies the behavior a declarative schema refers to by name.
// Every action, validator, or handler name in the document must resolve
// here; a dangling name is a load error, caught before any parse.
type Registry struct {
	Actions    map[string]ActionFunc
	Validators map[string]Validator
	Middleware map[string]Middleware
	After      map[string]AfterFunc
}

type specDocument struct {
	Name        string        `yaml:"name"`
	Version     string        `yaml:"version"`
	Description string        `yaml:"description"`
	Default     string        `yaml:"default"`
	Options     []optionDoc   `yaml:"options"`
	Middleware  []string      `yaml:"middleware"`
	Commands    []commandDoc  `yaml:"commands"`
}

type commandDoc struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Aliases     []string      `yaml:"aliases"`
	Hidden      bool          `yaml:"hidden"`
	Action      string        `yaml:"action"`
	Before      []string      `yaml:"before"`
	After       []string      `yaml:"after"`
	Arguments   []argumentDoc `yaml:"arguments"`
	Options     []optionDoc   `yaml:"options"`
	Commands    []commandDoc  `yaml:"commands"`
}

type argumentDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Variadic    bool   `yaml:"variadic"`
	Default     any    `yaml:"default"`
	Validator   string `yaml:"validator"`
}

type optionDoc struct {
	Name        string `yaml:"name"`
	Short       string `yaml:"short"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Default     any    `yaml:"default"`
	Env         string `yaml:"env"`
	Validator   string `yaml:"validator"`
}

// LoadSpec builds an App from a YAML document. The resulting application
// is behaviorally identical to one assembled with the fluent builders;
// schema invariants (duplicate keys, variadic placement, value types) are
// enforced during the load and reported as errors rather than panics.
func LoadSpec(data []byte, reg Registry) (*App, error) {
	var doc specDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidSpec, "malformed spec document")
	}
	if doc.Name == "" {
		return nil, errors.New(ErrCodeInvalidSpec, "spec must declare a name")
	}

	app := New(doc.Name)
	if doc.Version != "" {
		app.SetVersion(doc.Version)
	}
	app.SetDescription(doc.Description)

	for _, od := range doc.Options {
		spec, err := buildOptionSpec(od, reg)
		if err != nil {
			return nil, err
		}
		if err := validateOption(spec, app.globals); err != nil {
			return nil, err
		}
		app.globals = append(app.globals, spec)
	}

	for _, name := range doc.Middleware {
		mw, ok := reg.Middleware[name]
		if !ok {
			return nil, errors.New(ErrCodeInvalidSpec, fmt.Sprintf("unknown middleware %q", name))
		}
		app.Use(mw)
	}

	for _, cd := range doc.Commands {
		cmd, err := buildCommand(cd, reg)
		if err != nil {
			return nil, err
		}
		if err := app.commands.add(cmd); err != nil {
			return nil, err
		}
	}

	if doc.Default != "" {
		if _, ok := app.commands.lookup(doc.Default); !ok {
			return nil, errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("default command %q is not declared", doc.Default))
		}
		app.SetDefault(doc.Default)
	}

	return app, nil
}

func buildCommand(doc commandDoc, reg Registry) (*Command, error) {
	cmd := NewCommand(doc.Name, doc.Description).
		Alias(doc.Aliases...).
		SetHidden(doc.Hidden)

	if doc.Action != "" {
		action, ok := reg.Actions[doc.Action]
		if !ok {
			return nil, errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("unknown action %q for command %q", doc.Action, doc.Name))
		}
		cmd.SetHandler(action)
	}

	for _, name := range doc.Before {
		mw, ok := reg.Middleware[name]
		if !ok {
			return nil, errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("unknown middleware %q for command %q", name, doc.Name))
		}
		cmd.Before(mw)
	}
	for _, name := range doc.After {
		hook, ok := reg.After[name]
		if !ok {
			return nil, errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("unknown after-hook %q for command %q", name, doc.Name))
		}
		cmd.After(hook)
	}

	for _, ad := range doc.Arguments {
		spec, err := buildArgumentSpec(ad, reg)
		if err != nil {
			return nil, err
		}
		if err := validateArgument(spec, cmd.args); err != nil {
			return nil, err
		}
		cmd.args = append(cmd.args, spec)
	}

	for _, od := range doc.Options {
		spec, err := buildOptionSpec(od, reg)
		if err != nil {
			return nil, err
		}
		if err := validateOption(spec, cmd.options); err != nil {
			return nil, err
		}
		cmd.options = append(cmd.options, spec)
	}

	for _, sub := range doc.Commands {
		child, err := buildCommand(sub, reg)
		if err != nil {
			return nil, err
		}
		if err := cmd.children.add(child); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

func buildArgumentSpec(doc argumentDoc, reg Registry) (ArgumentSpec, error) {
	kind, err := parseKind(doc.Type)
	if err != nil {
		return ArgumentSpec{}, errors.Wrap(err, ErrCodeInvalidSpec,
			fmt.Sprintf("argument %q", doc.Name))
	}
	validator, err := lookupValidator(doc.Validator, reg)
	if err != nil {
		return ArgumentSpec{}, err
	}
	def, err := normalizeDocDefault(doc.Default, kind, doc.Name)
	if err != nil {
		return ArgumentSpec{}, err
	}
	return ArgumentSpec{
		Name:        doc.Name,
		Description: doc.Description,
		Kind:        kind,
		Required:    doc.Required,
		Variadic:    doc.Variadic,
		Default:     def,
		Validator:   validator,
	}, nil
}

func buildOptionSpec(doc optionDoc, reg Registry) (OptionSpec, error) {
	kind, err := parseKind(doc.Type)
	if err != nil {
		return OptionSpec{}, errors.Wrap(err, ErrCodeInvalidSpec,
			fmt.Sprintf("option %q", doc.Name))
	}
	validator, err := lookupValidator(doc.Validator, reg)
	if err != nil {
		return OptionSpec{}, err
	}
	def, err := normalizeDocDefault(doc.Default, kind, doc.Name)
	if err != nil {
		return OptionSpec{}, err
	}
	return OptionSpec{
		Name:        doc.Name,
		Short:       doc.Short,
		Description: doc.Description,
		Kind:        kind,
		Required:    doc.Required,
		Default:     def,
		EnvVar:      doc.Env,
		Validator:   validator,
	}, nil
}

func lookupValidator(name string, reg Registry) (Validator, error) {
	if name == "" {
		return nil, nil
	}
	v, ok := reg.Validators[name]
	if !ok {
		return nil, errors.New(ErrCodeInvalidSpec, fmt.Sprintf("unknown validator %q", name))
	}
	return v, nil
}

func parseKind(name string) (ValueKind, error) {
	switch name {
	case "", "string":
		return KindString, nil
	case "number":
		return KindNumber, nil
	case "bool", "boolean":
		return KindBool, nil
	default:
		return KindString, errors.New(ErrCodeInvalidSpec, fmt.Sprintf("unknown type %q", name))
	}
}

// normalizeDocDefault checks a YAML default against the declared kind and
// widens numbers, so a literal 5 behaves like 5.0 at runtime.
func normalizeDocDefault(def any, kind ValueKind, field string) (any, error) {
	if def == nil {
		return nil, nil
	}
	switch kind {
	case KindString:
		if s, ok := def.(string); ok {
			return s, nil
		}
	case KindNumber:
		switch n := def.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		}
	case KindBool:
		if b, ok := def.(bool); ok {
			return b, nil
		}
	}
	return nil, errors.New(ErrCodeInvalidSpec,
		fmt.Sprintf("default for %q does not match declared type %s", field, kind))
}
