// schema.go: Declarative schema model for Blic
//
// Arguments, options, and command trees are built once, before any parse,
// and are immutable afterwards. Schema mistakes (duplicate keys, a variadic
// argument that is not last) are programming errors and fail fast at
// construction time, never during a parse.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"fmt"
	"unicode/utf8"

	"github.com/agilira/go-errors"
)

// ValueKind is the declared type of an option or argument value.
type ValueKind int

const (
	// KindString passes the raw token through unchanged.
	KindString ValueKind = iota
	// KindNumber coerces via a strict decimal parse into float64.
	KindNumber
	// KindBool accepts exactly true/1/yes and false/0/no.
	KindBool
)

// String returns the schema name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// ArgumentSpec describes one positional argument. Order of declaration is
// significant; only the last argument of a command may be variadic.
type ArgumentSpec struct {
	Name        string
	Description string
	Kind        ValueKind
	Required    bool
	Default     any
	Variadic    bool
	Validator   Validator
}

// OptionSpec describes one named option. Short, when set, must be a single
// rune and unique among the sibling options of its command.
type OptionSpec struct {
	Name        string
	Short       string
	Description string
	Kind        ValueKind
	Required    bool
	Default     any
	EnvVar      string
	Validator   Validator
}

// commandSet is the canonical arena of child commands. Nodes live in a
// slice indexed by a stable identifier; names and aliases map into that
// arena through a separate index, so an alias can never create a second
// node and "same command" checks are exact identity comparisons.
type commandSet struct {
	nodes []*Command
	index map[string]int
}

func newCommandSet() *commandSet {
	return &commandSet{index: make(map[string]int)}
}

// add registers a node under its name and all aliases.
func (s *commandSet) add(c *Command) error {
	if c.name == "" {
		return errors.New(ErrCodeInvalidSchema, "command name cannot be empty")
	}
	keys := append([]string{c.name}, c.aliases...)
	for _, key := range keys {
		if _, dup := s.index[key]; dup {
			return errors.New(ErrCodeInvalidSchema,
				fmt.Sprintf("duplicate command name or alias %q", key)).
				WithContext("command", c.name)
		}
	}
	id := len(s.nodes)
	s.nodes = append(s.nodes, c)
	for _, key := range keys {
		s.index[key] = id
	}
	return nil
}

// lookup resolves a name or alias to its node.
func (s *commandSet) lookup(name string) (*Command, bool) {
	if s == nil {
		return nil, false
	}
	id, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.nodes[id], true
}

// list returns the nodes in declaration order.
func (s *commandSet) list() []*Command {
	if s == nil {
		return nil
	}
	return s.nodes
}

// keys returns every registered name and alias, visible commands only.
func (s *commandSet) keys() []string {
	if s == nil {
		return nil
	}
	var out []string
	for key, id := range s.index {
		if !s.nodes[id].hidden {
			out = append(out, key)
		}
	}
	return out
}

// Command is one node of the command tree, reachable by name or alias.
// Build it with NewCommand and the fluent Add/Set methods; once the
// application starts parsing, the node must not change.
type Command struct {
	name        string
	description string
	aliases     []string
	args        []ArgumentSpec
	options     []OptionSpec
	children    *commandSet
	action      ActionFunc
	before      []Middleware
	after       []AfterFunc
	errHandler  ErrorHandler
	hidden      bool
}

// NewCommand creates a command node with the given name and description.
func NewCommand(name, description string) *Command {
	return &Command{
		name:        name,
		description: description,
		children:    newCommandSet(),
	}
}

// SetHandler sets the terminal action. A command without an action is a
// valid directory node; invoking it prints its help.
func (c *Command) SetHandler(action ActionFunc) *Command {
	c.action = action
	return c
}

// Alias registers alternate lookup keys resolving to this same node.
// Aliases must be set before the command is added to a parent.
func (c *Command) Alias(names ...string) *Command {
	c.aliases = append(c.aliases, names...)
	return c
}

// SetHidden excludes the command from help listings and suggestions.
// Hidden commands still resolve and execute normally.
func (c *Command) SetHidden(hidden bool) *Command {
	c.hidden = hidden
	return c
}

// SetErrorHandler sets a handler for errors raised by this command's action
// or "before" middleware. It takes precedence over the application handler.
func (c *Command) SetErrorHandler(h ErrorHandler) *Command {
	c.errHandler = h
	return c
}

// Before appends middleware that runs inside the global chain, before the
// action. A handler resumes the chain with ctx.Next().
func (c *Command) Before(mw ...Middleware) *Command {
	c.before = append(c.before, mw...)
	return c
}

// After appends hooks that run sequentially once the chain has unwound.
// After-hooks cannot short-circuit one another and have no Next.
func (c *Command) After(hooks ...AfterFunc) *Command {
	c.after = append(c.after, hooks...)
	return c
}

// AddCommand attaches a child node. Panics on a duplicate name or alias
// among siblings; that is a schema bug, not runtime input.
func (c *Command) AddCommand(child *Command) *Command {
	if err := c.children.add(child); err != nil {
		panic(err)
	}
	return c
}

// Subcommand creates, attaches, and returns a child command in one step.
func (c *Command) Subcommand(name, description string, action ActionFunc) *Command {
	child := NewCommand(name, description).SetHandler(action)
	c.AddCommand(child)
	return child
}

// AddOption declares an option. Panics on a duplicate long name, a
// duplicate short key, or a short key longer than one rune.
func (c *Command) AddOption(spec OptionSpec) *Command {
	if err := validateOption(spec, c.options); err != nil {
		panic(err)
	}
	c.options = append(c.options, spec)
	return c
}

// AddStringFlag declares a string option with a short alias and default.
func (c *Command) AddStringFlag(name, short, def, description string) *Command {
	return c.AddOption(OptionSpec{Name: name, Short: short, Kind: KindString, Default: def, Description: description})
}

// AddNumberFlag declares a numeric option with a short alias and default.
func (c *Command) AddNumberFlag(name, short string, def float64, description string) *Command {
	return c.AddOption(OptionSpec{Name: name, Short: short, Kind: KindNumber, Default: def, Description: description})
}

// AddBoolFlag declares a boolean option with a short alias and default.
func (c *Command) AddBoolFlag(name, short string, def bool, description string) *Command {
	return c.AddOption(OptionSpec{Name: name, Short: short, Kind: KindBool, Default: def, Description: description})
}

// AddArgument declares a positional argument. Panics when an argument is
// declared after a variadic one or duplicates a name.
func (c *Command) AddArgument(spec ArgumentSpec) *Command {
	if err := validateArgument(spec, c.args); err != nil {
		panic(err)
	}
	c.args = append(c.args, spec)
	return c
}

// AddStringArg declares a required or optional string argument.
func (c *Command) AddStringArg(name, description string, required bool) *Command {
	return c.AddArgument(ArgumentSpec{Name: name, Description: description, Kind: KindString, Required: required})
}

// Read-only traversal, for completion generators and documentation tools.

// Name returns the command name.
func (c *Command) Name() string { return c.name }

// Description returns the command description.
func (c *Command) Description() string { return c.description }

// Aliases returns the alternate lookup keys.
func (c *Command) Aliases() []string { return c.aliases }

// Arguments returns the positional argument specs in declaration order.
func (c *Command) Arguments() []ArgumentSpec { return c.args }

// Options returns the option specs in declaration order.
func (c *Command) Options() []OptionSpec { return c.options }

// Commands returns the child commands in declaration order.
func (c *Command) Commands() []*Command { return c.children.list() }

// Command resolves a child by name or alias.
func (c *Command) Command(name string) (*Command, bool) {
	return c.children.lookup(name)
}

// Hidden reports whether the command is excluded from listings.
func (c *Command) Hidden() bool { return c.hidden }

// HasAction reports whether the command declares a terminal action.
func (c *Command) HasAction() bool { return c.action != nil }

// validateOption enforces the construction-time schema invariants for one
// option against its already-declared siblings.
func validateOption(spec OptionSpec, siblings []OptionSpec) error {
	if spec.Name == "" {
		return errors.New(ErrCodeInvalidSchema, "option name cannot be empty")
	}
	if spec.Short != "" && utf8.RuneCountInString(spec.Short) != 1 {
		return errors.New(ErrCodeInvalidSchema,
			fmt.Sprintf("short key %q for option %q must be a single character", spec.Short, spec.Name))
	}
	for _, sib := range siblings {
		if sib.Name == spec.Name {
			return errors.New(ErrCodeInvalidSchema,
				fmt.Sprintf("duplicate option name %q", spec.Name))
		}
		if spec.Short != "" && sib.Short == spec.Short {
			return errors.New(ErrCodeInvalidSchema,
				fmt.Sprintf("duplicate short key %q shared by options %q and %q", spec.Short, sib.Name, spec.Name))
		}
	}
	return nil
}

// validateArgument enforces ordering invariants: names unique, and nothing
// may follow a variadic argument.
func validateArgument(spec ArgumentSpec, siblings []ArgumentSpec) error {
	if spec.Name == "" {
		return errors.New(ErrCodeInvalidSchema, "argument name cannot be empty")
	}
	for _, sib := range siblings {
		if sib.Name == spec.Name {
			return errors.New(ErrCodeInvalidSchema,
				fmt.Sprintf("duplicate argument name %q", spec.Name))
		}
		if sib.Variadic {
			return errors.New(ErrCodeInvalidSchema,
				fmt.Sprintf("argument %q declared after variadic argument %q", spec.Name, sib.Name))
		}
	}
	return nil
}
