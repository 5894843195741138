// pipeline.go: Fixed-order execution pipeline for Blic
//
// A run is a strict sequence of phases over a per-invocation state value.
// Every phase is total: it continues, exits with a code, or hands off to
// the middleware chain. The first exit terminates the pipeline.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import "fmt"

// phaseOutcome is the terminal disposition of one phase.
type phaseOutcome int

const (
	outcomeContinue phaseOutcome = iota
	outcomeExit
	outcomeExecute
)

// Reserved flag names the pipeline injects when the application does not
// declare them itself.
const (
	helpOptionName    = "help"
	helpOptionShort   = "h"
	versionOptionName = "version"
	versionOptionShort = "V"
)

// pipelineState is the per-invocation state, created fresh for each Run,
// transformed phase by phase, and discarded at the first exit or after
// action completion.
type pipelineState struct {
	argv         []string
	tokens       []Token
	globalVals   map[string]any
	explicit     map[string]bool
	path         []string
	command      *Command
	ancestors    []*Command
	optionVals   map[string]any
	argVals      map[string]any
	rest         []string
	errs         *ErrorList
	firstUnknown string
	exitCode     int
}

// Run executes the pipeline over argv and returns the process exit code.
// It never calls os.Exit; see RunAndExit for the terminating variant.
func (a *App) Run(argv []string) int {
	state := pipelineState{
		argv: argv,
		errs: &ErrorList{},
	}

	phases := []func(pipelineState) (pipelineState, phaseOutcome){
		a.phaseTokenize,
		a.phaseGlobalOptions,
		a.phaseVersion,
		a.phaseExtractCommand,
		a.phaseRootHelp,
		a.phaseUnknownCommand,
		a.phaseResolve,
		a.phaseCommandHelp,
		a.phaseCommandOptions,
		a.phaseArguments,
		a.phaseValidate,
		a.phaseActionCheck,
	}

	for _, phase := range phases {
		var outcome phaseOutcome
		state, outcome = phase(state)
		switch outcome {
		case outcomeExit:
			return state.exitCode
		case outcomeExecute:
			return a.execute(state)
		}
	}
	return state.exitCode
}

func (a *App) phaseTokenize(s pipelineState) (pipelineState, phaseOutcome) {
	s.tokens = Tokenize(s.argv)
	return s, outcomeContinue
}

// phaseGlobalOptions parses global options with unknown flags allowed:
// anything unrecognized stays in the stream for the command-level pass.
func (a *App) phaseGlobalOptions(s pipelineState) (pipelineState, phaseOutcome) {
	parsed := parseOptions(s.tokens, a.globalsWithImplicit(), true, a.env)
	s.globalVals = parsed.values
	s.explicit = parsed.explicit
	s.tokens = parsed.remaining
	s.errs.Append(parsed.errs)
	return s, outcomeContinue
}

func (a *App) phaseVersion(s pipelineState) (pipelineState, phaseOutcome) {
	if b, _ := s.globalVals[versionOptionName].(bool); b && s.explicit[versionOptionName] {
		fmt.Fprintf(a.stdout, "%s version %s\n", a.name, a.version)
		s.exitCode = 0
		return s, outcomeExit
	}
	return s, outcomeContinue
}

func (a *App) phaseExtractCommand(s pipelineState) (pipelineState, phaseOutcome) {
	res := resolveCommand(s.tokens, a.commands)
	s.path = res.path
	s.command = res.node
	s.firstUnknown = res.firstUnknown
	s.tokens = res.remaining
	return s, outcomeContinue
}

// phaseRootHelp honors --help only while zero command segments resolved;
// command-level help waits until the node is resolved.
func (a *App) phaseRootHelp(s pipelineState) (pipelineState, phaseOutcome) {
	if s.command == nil && s.helpRequested() {
		fmt.Fprint(a.stdout, a.help.Render(a.rootHelpView()))
		s.exitCode = 0
		return s, outcomeExit
	}
	return s, outcomeContinue
}

// phaseUnknownCommand handles the no-command outcomes: route to the
// default command when one is registered, print root help when nothing
// was typed at all, otherwise report the unknown token with ranked
// suggestions.
func (a *App) phaseUnknownCommand(s pipelineState) (pipelineState, phaseOutcome) {
	if s.command != nil {
		return s, outcomeContinue
	}

	if s.firstUnknown == "" {
		fmt.Fprint(a.stdout, a.help.Render(a.rootHelpView()))
		s.exitCode = 0
		return s, outcomeExit
	}

	if a.defaultCmd != "" {
		if node, ok := a.commands.lookup(a.defaultCmd); ok {
			s.command = node
			s.path = []string{node.name}
			return s, outcomeContinue
		}
	}

	fmt.Fprintf(a.stderr, "Error: unknown command %q\n", s.firstUnknown)
	if suggestions := a.suggest(s.firstUnknown, a.commands.keys()); len(suggestions) > 0 {
		fmt.Fprintf(a.stderr, "\nDid you mean?\n")
		for _, name := range suggestions {
			fmt.Fprintf(a.stderr, "  %s\n", name)
		}
	}
	s.exitCode = 1
	return s, outcomeExit
}

// phaseResolve rebuilds the node and its ancestor chain from the extracted
// path, so later phases depend only on the canonical arena.
func (a *App) phaseResolve(s pipelineState) (pipelineState, phaseOutcome) {
	s.ancestors = ancestorChain(s.path, a.commands)
	if len(s.ancestors) > 0 {
		s.command = s.ancestors[len(s.ancestors)-1]
	}
	return s, outcomeContinue
}

func (a *App) phaseCommandHelp(s pipelineState) (pipelineState, phaseOutcome) {
	if s.helpRequested() {
		fmt.Fprint(a.stdout, a.help.Render(a.commandHelpView(s.command, s.path)))
		s.exitCode = 0
		return s, outcomeExit
	}
	return s, outcomeContinue
}

// phaseCommandOptions parses the resolved command's options; unknown flags
// are errors here, there is nothing further down to claim them.
func (a *App) phaseCommandOptions(s pipelineState) (pipelineState, phaseOutcome) {
	parsed := parseOptions(s.tokens, s.command.options, false, a.env)
	s.optionVals = parsed.values
	for name := range parsed.explicit {
		s.explicit[name] = true
	}
	s.tokens = parsed.remaining
	s.errs.Append(parsed.errs)
	return s, outcomeContinue
}

func (a *App) phaseArguments(s pipelineState) (pipelineState, phaseOutcome) {
	positionals := make([]string, 0, len(s.tokens))
	for _, tok := range s.tokens {
		if tok.Kind == TokenArgument || tok.Kind == TokenOptionValue {
			positionals = append(positionals, tok.Value)
		}
	}
	parsed := parseArguments(positionals, s.command.args)
	s.argVals = parsed.values
	s.rest = parsed.rest
	s.errs.Append(parsed.errs)
	return s, outcomeContinue
}

// phaseValidate surfaces every accumulated error from the option and
// argument passes together: one run reports every problem found.
func (a *App) phaseValidate(s pipelineState) (pipelineState, phaseOutcome) {
	if s.errs.Empty() {
		return s, outcomeContinue
	}
	for _, e := range s.errs.Errors() {
		fmt.Fprintf(a.stderr, "Error: %s\n", e.Message)
	}
	s.exitCode = 1
	return s, outcomeExit
}

// phaseActionCheck lets a command with only subcommands act as a
// directory node: invoking it prints its help.
func (a *App) phaseActionCheck(s pipelineState) (pipelineState, phaseOutcome) {
	if !s.command.HasAction() {
		fmt.Fprint(a.stdout, a.help.Render(a.commandHelpView(s.command, s.path)))
		s.exitCode = 0
		return s, outcomeExit
	}
	return s, outcomeExecute
}

// execute hands the validated context to the middleware chain: global
// middleware outermost, then the command's before-handlers, then the
// action. Errors from that chain are caught exactly once and routed to
// the command's error handler, else the application's, else printed.
// After-hooks run outside that boundary, sequentially, with no advance
// capability; their failures are printed and fail the exit code without
// re-entering the handlers.
func (a *App) execute(s pipelineState) int {
	handlers := make([]Middleware, 0, len(a.middleware)+len(s.command.before))
	handlers = append(handlers, a.middleware...)
	handlers = append(handlers, s.command.before...)

	ctx := &Context{
		app:      a,
		command:  s.command,
		path:     s.path,
		rawArgv:  s.argv,
		options:  a.mergeValues(s),
		args:     s.argVals,
		explicit: s.explicit,
		rest:     s.rest,
		chain:    &chain{handlers: handlers, action: s.command.action},
	}

	exitCode := 0
	if err := runChain(ctx); err != nil {
		handler := s.command.errHandler
		if handler == nil {
			handler = a.errHandler
		}
		if handler != nil {
			err = handler(ctx, err)
		}
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			exitCode = 1
		}
	}

	for _, hook := range s.command.after {
		if err := hook(ctx); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			exitCode = 1
		}
	}

	return exitCode
}

// helpRequested reports an explicit help flag, wherever it appeared.
func (s *pipelineState) helpRequested() bool {
	b, _ := s.globalVals[helpOptionName].(bool)
	return b && s.explicit[helpOptionName]
}

// globalsWithImplicit appends the reserved help and version options unless
// the application declared those names itself.
func (a *App) globalsWithImplicit() []OptionSpec {
	specs := make([]OptionSpec, len(a.globals))
	copy(specs, a.globals)
	if !a.declaresGlobal(helpOptionName) {
		specs = append(specs, OptionSpec{
			Name: helpOptionName, Short: a.freeShort(helpOptionShort),
			Kind: KindBool, Description: "Show help",
		})
	}
	if !a.declaresGlobal(versionOptionName) {
		specs = append(specs, OptionSpec{
			Name: versionOptionName, Short: a.freeShort(versionOptionShort),
			Kind: KindBool, Description: "Show version",
		})
	}
	return specs
}

func (a *App) declaresGlobal(name string) bool {
	for _, spec := range a.globals {
		if spec.Name == name {
			return true
		}
	}
	return false
}

// freeShort returns the short key unless a declared global already owns it.
func (a *App) freeShort(short string) string {
	for _, spec := range a.globals {
		if spec.Short == short {
			return ""
		}
	}
	return short
}

// mergeValues folds global option values under the command's, dropping the
// implicit help/version entries so they never leak into user code.
func (a *App) mergeValues(s pipelineState) map[string]any {
	merged := make(map[string]any, len(s.globalVals)+len(s.optionVals))
	for name, value := range s.globalVals {
		if (name == helpOptionName && !a.declaresGlobal(helpOptionName)) ||
			(name == versionOptionName && !a.declaresGlobal(versionOptionName)) {
			continue
		}
		merged[name] = value
	}
	for name, value := range s.optionVals {
		merged[name] = value
	}
	return merged
}

// rootHelpView snapshots the application for the renderer.
func (a *App) rootHelpView() HelpView {
	return HelpView{
		AppName:     a.name,
		Version:     a.version,
		Description: a.description,
		Options:     a.globals,
		Commands:    a.commands.list(),
	}
}

// commandHelpView snapshots a command with its merged (command plus
// global) options.
func (a *App) commandHelpView(cmd *Command, path []string) HelpView {
	merged := make([]OptionSpec, 0, len(cmd.options)+len(a.globals))
	merged = append(merged, cmd.options...)
	merged = append(merged, a.globals...)
	return HelpView{
		AppName:     a.name,
		Version:     a.version,
		Description: cmd.description,
		Path:        path,
		Arguments:   cmd.args,
		Options:     merged,
		Commands:    cmd.children.list(),
		HasAction:   cmd.HasAction(),
	}
}
