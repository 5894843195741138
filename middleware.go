// middleware.go: Continuation-passing middleware chain for Blic
//
// A chain holds an ordered handler list and a cursor. Invoking advance
// (Context.Next) runs the handler at the cursor, incrementing first; past
// the end it invokes the terminal action. A handler that never advances
// short-circuits everything after it, silently. After-hooks run once the
// chain has unwound; they have no advance capability and cannot skip one
// another.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"fmt"
	"strings"
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// ActionFunc is the terminal action of a command.
type ActionFunc func(ctx *Context) error

// Middleware wraps command execution. Call ctx.Next() to resume the chain;
// returning without calling it stops everything downstream.
type Middleware func(ctx *Context) error

// AfterFunc runs after the chain unwinds. It cannot short-circuit.
type AfterFunc func(ctx *Context) error

// ErrorHandler receives an error raised by the action or "before"
// middleware. Returning nil marks the error handled; a non-nil return is
// printed and the run exits non-zero.
type ErrorHandler func(ctx *Context, err error) error

// chain is the per-invocation interceptor state. It lives inside the
// Context and is never shared across invocations.
type chain struct {
	handlers []Middleware
	action   ActionFunc
	cursor   int
}

// advance runs the next handler or, past the end, the terminal action.
// Extra calls past the action are no-ops.
func (ch *chain) advance(ctx *Context) error {
	if ch == nil {
		return nil
	}
	if ch.cursor < len(ch.handlers) {
		handler := ch.handlers[ch.cursor]
		ch.cursor++
		return handler(ctx)
	}
	if ch.cursor == len(ch.handlers) {
		ch.cursor++
		if ch.action != nil {
			return ch.action(ctx)
		}
	}
	return nil
}

// runChain kicks off the chain and forms its single error boundary:
// any error or panic from a handler or the action surfaces here exactly
// once.
func runChain(ctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(ErrCodeActionPanic, fmt.Sprintf("panic: %v", r))
		}
	}()
	return ctx.Next()
}

// TimingMiddleware reports how long the rest of the chain (including the
// action) took, through the given sink. Timestamps come from the shared
// time cache, the same source the rest of the AGILira ecosystem uses for
// cheap monotonic-enough readings.
func TimingMiddleware(sink func(command string, elapsed time.Duration)) Middleware {
	return func(ctx *Context) error {
		start := timecache.CachedTimeNano()
		err := ctx.Next()
		if sink != nil {
			sink(strings.Join(ctx.Path(), " "), time.Duration(timecache.CachedTimeNano()-start))
		}
		return err
	}
}
