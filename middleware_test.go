// middleware_test.go - Tests for the continuation-passing execution chain
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// stepMiddleware records entry and exit around the continuation.
func stepMiddleware(log *[]string, name string) Middleware {
	return func(ctx *Context) error {
		*log = append(*log, name+"-pre")
		err := ctx.Next()
		*log = append(*log, name+"-post")
		return err
	}
}

func TestChain_OnionOrdering(t *testing.T) {
	app, _, _ := newTestApp()

	var log []string
	app.Use(stepMiddleware(&log, "A"))

	cmd := NewCommand("run", "").SetHandler(func(*Context) error {
		log = append(log, "action")
		return nil
	})
	cmd.Before(stepMiddleware(&log, "B"))
	cmd.After(func(*Context) error {
		log = append(log, "C")
		return nil
	})
	app.AddCommand(cmd)

	if code := app.Run([]string{"run"}); code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	want := []string{"A-pre", "B-pre", "action", "B-post", "A-post", "C"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

// A middleware that returns without calling Next halts the chain
// silently: no error, success exit code.
func TestChain_SilentShortCircuit(t *testing.T) {
	app, _, errOut := newTestApp()

	ran := false
	app.Use(func(*Context) error { return nil })
	app.AddCommand(NewCommand("run", "").SetHandler(func(*Context) error {
		ran = true
		return nil
	}))

	if code := app.Run([]string{"run"}); code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if ran {
		t.Error("action must not run after a short-circuit")
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected stderr: %q", errOut.String())
	}
}

func TestChain_ExtraNextCallsAreNoOps(t *testing.T) {
	app, _, _ := newTestApp()

	runs := 0
	app.Use(func(ctx *Context) error {
		if err := ctx.Next(); err != nil {
			return err
		}
		return ctx.Next()
	})
	app.AddCommand(NewCommand("run", "").SetHandler(func(*Context) error {
		runs++
		return nil
	}))

	if code := app.Run([]string{"run"}); code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if runs != 1 {
		t.Errorf("action ran %d times, want 1", runs)
	}
}

func TestChain_CommandHandlerWinsOverGlobal(t *testing.T) {
	app, _, _ := newTestApp()

	var handledBy string
	app.SetErrorHandler(func(*Context, error) error {
		handledBy = "global"
		return nil
	})
	cmd := NewCommand("run", "").SetHandler(func(*Context) error {
		return errors.New("boom")
	})
	cmd.SetErrorHandler(func(*Context, error) error {
		handledBy = "command"
		return nil
	})
	app.AddCommand(cmd)

	if code := app.Run([]string{"run"}); code != 0 {
		t.Fatalf("exit = %d, want 0 when handler absorbs the error", code)
	}
	if handledBy != "command" {
		t.Errorf("handled by %q, want command", handledBy)
	}
}

func TestChain_GlobalHandlerReceivesUnclaimedError(t *testing.T) {
	app, _, _ := newTestApp()

	var got error
	app.SetErrorHandler(func(_ *Context, err error) error {
		got = err
		return nil
	})
	app.AddCommand(NewCommand("run", "").SetHandler(func(*Context) error {
		return errors.New("boom")
	}))

	if code := app.Run([]string{"run"}); code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if got == nil || got.Error() != "boom" {
		t.Errorf("handler received %v", got)
	}
}

func TestChain_UnhandledErrorPrinted(t *testing.T) {
	app, _, errOut := newTestApp()
	app.AddCommand(NewCommand("run", "").SetHandler(func(*Context) error {
		return errors.New("boom")
	}))

	if code := app.Run([]string{"run"}); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

// A handler that re-raises keeps the failure exit code.
func TestChain_HandlerCanReRaise(t *testing.T) {
	app, _, errOut := newTestApp()

	cmd := NewCommand("run", "").SetHandler(func(*Context) error {
		return errors.New("boom")
	})
	cmd.SetErrorHandler(func(_ *Context, err error) error { return err })
	app.AddCommand(cmd)

	if code := app.Run([]string{"run"}); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

// After-hooks run outside the error boundary: their failures never reach
// the error handlers.
func TestChain_AfterHookErrorBypassesHandlers(t *testing.T) {
	app, _, errOut := newTestApp()

	handlerCalled := false
	app.SetErrorHandler(func(*Context, error) error {
		handlerCalled = true
		return nil
	})
	cmd := NewCommand("run", "").SetHandler(func(*Context) error { return nil })
	cmd.After(func(*Context) error {
		return errors.New("cleanup failed")
	})
	app.AddCommand(cmd)

	if code := app.Run([]string{"run"}); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if handlerCalled {
		t.Error("error handler must not see after-hook failures")
	}
	if !strings.Contains(errOut.String(), "cleanup failed") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

// After-hooks run even when the action failed and a handler absorbed it.
func TestChain_AfterHookRunsDespiteActionError(t *testing.T) {
	app, _, _ := newTestApp()

	hookRan := false
	cmd := NewCommand("run", "").SetHandler(func(*Context) error {
		return errors.New("boom")
	})
	cmd.SetErrorHandler(func(*Context, error) error { return nil })
	cmd.After(func(*Context) error {
		hookRan = true
		return nil
	})
	app.AddCommand(cmd)

	if code := app.Run([]string{"run"}); code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if !hookRan {
		t.Error("after-hook must run after an absorbed action error")
	}
}

func TestChain_PanicRecoveredAsError(t *testing.T) {
	app, _, errOut := newTestApp()
	app.AddCommand(NewCommand("run", "").SetHandler(func(*Context) error {
		panic("exploded")
	}))

	if code := app.Run([]string{"run"}); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "exploded") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestChain_PanicRoutedToHandler(t *testing.T) {
	app, _, _ := newTestApp()

	var got error
	app.SetErrorHandler(func(_ *Context, err error) error {
		got = err
		return nil
	})
	app.AddCommand(NewCommand("run", "").SetHandler(func(*Context) error {
		panic("exploded")
	}))

	if code := app.Run([]string{"run"}); code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if got == nil || !strings.Contains(got.Error(), "exploded") {
		t.Errorf("handler received %v", got)
	}
}

func TestTimingMiddleware_ReportsCommandPath(t *testing.T) {
	app, _, _ := newTestApp()

	var name string
	var elapsed time.Duration
	called := false
	app.Use(TimingMiddleware(func(command string, d time.Duration) {
		called = true
		name = command
		elapsed = d
	}))

	config := NewCommand("config", "")
	config.Subcommand("get", "", func(*Context) error { return nil })
	app.AddCommand(config)

	if code := app.Run([]string{"config", "get"}); code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if !called {
		t.Fatal("timing sink never invoked")
	}
	if name != "config get" {
		t.Errorf("command = %q, want %q", name, "config get")
	}
	if elapsed < 0 {
		t.Errorf("elapsed = %v, want non-negative", elapsed)
	}
}
