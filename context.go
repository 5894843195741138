// context.go: Per-invocation context and typed value access for Blic
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"fmt"
	"io"

	"github.com/agilira/go-errors"
)

// Context carries everything a middleware handler or action needs: the
// resolved command, its typed option and argument values, the raw argv,
// and the advance capability of the middleware chain. Each invocation owns
// its Context exclusively.
type Context struct {
	app      *App
	command  *Command
	path     []string
	rawArgv  []string
	options  map[string]any
	args     map[string]any
	explicit map[string]bool
	rest     []string
	chain    *chain
}

// Next resumes the middleware chain: the next handler, or past the end,
// the terminal action. A handler that returns without calling Next
// short-circuits everything after it.
func (ctx *Context) Next() error {
	return ctx.chain.advance(ctx)
}

// Command returns the resolved command node.
func (ctx *Context) Command() *Command { return ctx.command }

// Path returns the resolved command path, most general segment first.
func (ctx *Context) Path() []string { return ctx.path }

// RawArgv returns the unprocessed invocation arguments.
func (ctx *Context) RawArgv() []string { return ctx.rawArgv }

// Rest returns surplus positional values beyond the declared arguments.
func (ctx *Context) Rest() []string { return ctx.rest }

// Stdout returns the application's output stream.
func (ctx *Context) Stdout() io.Writer { return ctx.app.stdout }

// Stderr returns the application's error stream.
func (ctx *Context) Stderr() io.Writer { return ctx.app.stderr }

// App returns the owning application, for read-only tree traversal.
func (ctx *Context) App() *App { return ctx.app }

// Value returns the raw value of an option or argument by name, options
// first.
func (ctx *Context) Value(name string) (any, bool) {
	if v, ok := ctx.options[name]; ok {
		return v, true
	}
	v, ok := ctx.args[name]
	return v, ok
}

// IsSet reports whether an option was set by an explicit flag, as opposed
// to an environment fallback or a default.
func (ctx *Context) IsSet(name string) bool {
	return ctx.explicit[name]
}

// String returns a string option or argument, or "" when absent or not a
// string.
func (ctx *Context) String(name string) string {
	if v, ok := ctx.Value(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Number returns a numeric option or argument, or 0 when absent.
func (ctx *Context) Number(name string) float64 {
	if v, ok := ctx.Value(name); ok {
		if n, ok := v.(float64); ok {
			return n
		}
	}
	return 0
}

// Bool returns a boolean option or argument, or false when absent.
func (ctx *Context) Bool(name string) bool {
	if v, ok := ctx.Value(name); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Strings returns the string values of a variadic argument.
func (ctx *Context) Strings(name string) []string {
	v, ok := ctx.Value(name)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Numbers returns the numeric values of a variadic argument.
func (ctx *Context) Numbers(name string) []float64 {
	v, ok := ctx.Value(name)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if n, ok := item.(float64); ok {
			out = append(out, n)
		}
	}
	return out
}

// Binder copies context values into caller variables, collecting every
// mismatch instead of stopping at the first:
//
//	var host string
//	var port float64
//	err := ctx.Bind().
//		String(&host, "host").
//		Number(&port, "port").
//		Apply()
//
// Absent values leave the destination untouched, so defaults assigned
// before binding survive.
type Binder struct {
	ctx  *Context
	errs []string
}

// Bind starts a fluent binding over this context's values.
func (ctx *Context) Bind() *Binder {
	return &Binder{ctx: ctx}
}

func (b *Binder) mismatch(name, want string, got any) {
	b.errs = append(b.errs, fmt.Sprintf("cannot bind %q: expected %s, have %T", name, want, got))
}

// String binds a string value.
func (b *Binder) String(dst *string, name string) *Binder {
	if v, ok := b.ctx.Value(name); ok {
		if s, ok := v.(string); ok {
			*dst = s
		} else {
			b.mismatch(name, "string", v)
		}
	}
	return b
}

// Number binds a numeric value.
func (b *Binder) Number(dst *float64, name string) *Binder {
	if v, ok := b.ctx.Value(name); ok {
		if n, ok := v.(float64); ok {
			*dst = n
		} else {
			b.mismatch(name, "number", v)
		}
	}
	return b
}

// Bool binds a boolean value.
func (b *Binder) Bool(dst *bool, name string) *Binder {
	if v, ok := b.ctx.Value(name); ok {
		if bv, ok := v.(bool); ok {
			*dst = bv
		} else {
			b.mismatch(name, "bool", v)
		}
	}
	return b
}

// Strings binds a variadic string capture.
func (b *Binder) Strings(dst *[]string, name string) *Binder {
	if v, ok := b.ctx.Value(name); ok {
		if _, isSlice := v.([]any); isSlice {
			*dst = b.ctx.Strings(name)
		} else {
			b.mismatch(name, "string list", v)
		}
	}
	return b
}

// Numbers binds a variadic numeric capture.
func (b *Binder) Numbers(dst *[]float64, name string) *Binder {
	if v, ok := b.ctx.Value(name); ok {
		if _, isSlice := v.([]any); isSlice {
			*dst = b.ctx.Numbers(name)
		} else {
			b.mismatch(name, "number list", v)
		}
	}
	return b
}

// Apply reports every recorded mismatch as one coded error, or nil when
// every binding succeeded. No destination is written on a mismatch, so
// there are no partial writes to roll back.
func (b *Binder) Apply() error {
	if len(b.errs) == 0 {
		return nil
	}
	err := errors.New(ErrCodeBindFailed, b.errs[0])
	for i := 1; i < len(b.errs); i++ {
		err = err.WithContext(fmt.Sprintf("mismatch_%d", i), b.errs[i])
	}
	return err
}
