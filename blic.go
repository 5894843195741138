// blic: Lightweight command-line framework with deterministic execution
//
// Philosophy:
// - Minimal dependencies (AGILira ecosystem plus small single-purpose libraries)
// - One-way data flow: argv -> tokens -> schema-directed parse -> action
// - Immutable schema, per-invocation state, batched error reporting
// - No I/O beyond the injected output streams; no process ownership
//
// Example Usage:
//   app := blic.New("tool").SetVersion("1.0.0")
//   app.AddCommand(blic.NewCommand("run", "Run the thing").
//       SetHandler(func(ctx *blic.Context) error { return nil }))
//   os.Exit(app.Run(os.Args[1:]))
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"io"
	"os"
)

// App is the root of a command-line application: its identity, the
// top-level command map, global options and middleware, and the injected
// collaborators (output streams, environment accessor, help renderer,
// suggestion provider). Build it once; it is immutable during Run and safe
// for concurrent reads.
type App struct {
	name        string
	version     string
	description string
	commands    *commandSet
	globals     []OptionSpec
	middleware  []Middleware
	errHandler  ErrorHandler
	defaultCmd  string
	stdout      io.Writer
	stderr      io.Writer
	env         EnvLookup
	help        HelpRenderer
	suggest     SuggestFunc
}

// New creates an application with the default collaborators: real stdio,
// the process environment, the plain-text help renderer, and the
// levenshtein suggestion provider.
func New(name string) *App {
	return &App{
		name:     name,
		version:  "0.0.0",
		commands: newCommandSet(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		env:      OSEnv(),
		help:     newDefaultHelpRenderer(),
		suggest:  defaultSuggest,
	}
}

// SetVersion sets the version string printed by --version.
func (a *App) SetVersion(version string) *App {
	a.version = version
	return a
}

// SetDescription sets the description shown in root help.
func (a *App) SetDescription(description string) *App {
	a.description = description
	return a
}

// AddCommand attaches a top-level command. Panics on a duplicate name or
// alias, a schema bug caught before any parse.
func (a *App) AddCommand(cmd *Command) *App {
	if err := a.commands.add(cmd); err != nil {
		panic(err)
	}
	return a
}

// AddGlobalOption declares an option parsed before any command is known.
// Panics on duplicate long names or short keys among globals.
func (a *App) AddGlobalOption(spec OptionSpec) *App {
	if err := validateOption(spec, a.globals); err != nil {
		panic(err)
	}
	a.globals = append(a.globals, spec)
	return a
}

// AddGlobalStringFlag declares a global string option.
func (a *App) AddGlobalStringFlag(name, short, def, description string) *App {
	return a.AddGlobalOption(OptionSpec{Name: name, Short: short, Kind: KindString, Default: def, Description: description})
}

// AddGlobalBoolFlag declares a global boolean option.
func (a *App) AddGlobalBoolFlag(name, short string, def bool, description string) *App {
	return a.AddGlobalOption(OptionSpec{Name: name, Short: short, Kind: KindBool, Default: def, Description: description})
}

// Use appends global middleware. Global handlers form the outermost layer
// of the chain, wrapping every command's own middleware and action.
func (a *App) Use(mw ...Middleware) *App {
	a.middleware = append(a.middleware, mw...)
	return a
}

// SetErrorHandler sets the fallback handler for errors escaping any
// command without its own handler.
func (a *App) SetErrorHandler(h ErrorHandler) *App {
	a.errHandler = h
	return a
}

// SetDefault names the command that receives the whole invocation when
// the first token matches no command. The unresolved token becomes its
// first positional argument.
func (a *App) SetDefault(name string) *App {
	a.defaultCmd = name
	return a
}

// SetOutput redirects the application's output stream.
func (a *App) SetOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// SetErrorOutput redirects the application's error stream.
func (a *App) SetErrorOutput(w io.Writer) *App {
	a.stderr = w
	return a
}

// SetEnvLookup replaces the environment accessor used for option
// fallback. Tests use MapEnv to avoid touching process state.
func (a *App) SetEnvLookup(env EnvLookup) *App {
	a.env = env
	return a
}

// SetHelpRenderer replaces the plain-text help renderer.
func (a *App) SetHelpRenderer(r HelpRenderer) *App {
	a.help = r
	return a
}

// SetSuggestionProvider replaces the unknown-command suggestion ranker.
func (a *App) SetSuggestionProvider(s SuggestFunc) *App {
	a.suggest = s
	return a
}

// Read-only traversal for external tools.

// Name returns the application name.
func (a *App) Name() string { return a.name }

// Version returns the application version.
func (a *App) Version() string { return a.version }

// Description returns the application description.
func (a *App) Description() string { return a.description }

// Commands returns the top-level commands in declaration order.
func (a *App) Commands() []*Command { return a.commands.list() }

// Command resolves a top-level command by name or alias.
func (a *App) Command(name string) (*Command, bool) { return a.commands.lookup(name) }

// GlobalOptions returns the global option specs in declaration order.
func (a *App) GlobalOptions() []OptionSpec { return a.globals }

// RunAndExit runs the pipeline and exits the process with its code.
func (a *App) RunAndExit(argv []string) {
	os.Exit(a.Run(argv))
}
