// doc.go: Package documentation for Blic
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package blic provides a lightweight framework for building command-line
// tools, turning raw process arguments into typed, validated data and
// dispatching to user-supplied actions through an interceptor chain.
//
// # Philosophy: Deterministic Command Execution
//
// Blic is built on the principle that a CLI run is a small, precise state
// machine. Every invocation flows one way through a fixed sequence of
// phases, every parse error in a pass is collected and reported together,
// and the declarative schema is immutable once built - safe for concurrent
// reads by completion generators, documentation extractors, or any other
// introspection tool.
//
// # Architecture Overview
//
// Blic consists of seven integrated subsystems:
//  1. Schema Model: immutable arguments, options, and command trees with aliases
//  2. Tokenizer: pure argv lexer (long/short flags, clustering, "--" separator)
//  3. Validation Engine: chainable rule builders evaluated in declared order
//  4. Option & Argument Parsers: type-directed coercion with batched errors
//  5. Command Resolver: alias-aware descent through the command tree
//  6. Pipeline Executor: fixed-order phases ending in exit or execution
//  7. Middleware Chain: continuation-passing interceptors around the action
//
// # Quick Start
//
// Build an application fluently and run it:
//
//	app := blic.New("greet").
//		SetVersion("1.0.0").
//		SetDescription("A friendly example")
//
//	hello := blic.NewCommand("hello", "Print a greeting").
//		SetHandler(func(ctx *blic.Context) error {
//			fmt.Fprintf(ctx.Stdout(), "Hello, %s!\n", ctx.String("name"))
//			return nil
//		})
//	hello.AddStringArg("name", "Who to greet", true)
//	hello.AddBoolFlag("shout", "s", false, "Shout the greeting")
//
//	app.AddCommand(hello)
//	os.Exit(app.Run(os.Args[1:]))
//
// # Typed Options with Environment Fallback
//
// Options resolve in strict precedence order: explicit flag, then the
// declared environment variable, then the default. The environment is read
// through an injectable accessor so tests never touch real process state:
//
//	cmd.AddOption(blic.OptionSpec{
//		Name:     "token",
//		Kind:     blic.KindString,
//		EnvVar:   "GREET_TOKEN",
//		Required: true,
//	})
//
// # Middleware
//
// Global middleware wraps command middleware, which wraps the action.
// A handler resumes the chain by calling ctx.Next(); a handler that never
// calls it short-circuits everything after it:
//
//	app.Use(func(ctx *blic.Context) error {
//		if !authorized(ctx) {
//			return nil // silent short-circuit, action never runs
//		}
//		return ctx.Next()
//	})
//
// # Declarative Schemas
//
// The same schema model can be loaded from a YAML document, with actions
// and validators bound by registered name. See LoadSpec.
package blic
