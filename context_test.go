// context_test.go - Tests for typed value access and the fluent binder
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"strings"
	"testing"
)

// captureContext runs argv through a full pipeline and hands the action's
// context back to the test.
func captureContext(t *testing.T, configure func(*App), argv []string) *Context {
	t.Helper()
	app, _, errOut := newTestApp()
	configure(app)

	var captured *Context
	cmd := NewCommand("probe", "").SetHandler(func(ctx *Context) error {
		captured = ctx
		return nil
	})
	cmd.AddStringArg("target", "", false)
	cmd.AddArgument(ArgumentSpec{Name: "extras", Kind: KindString, Variadic: true})
	cmd.AddStringFlag("host", "H", "localhost", "")
	cmd.AddNumberFlag("port", "p", 8080, "")
	cmd.AddBoolFlag("secure", "s", false, "")
	app.AddCommand(cmd)

	if code := app.Run(argv); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut.String())
	}
	if captured == nil {
		t.Fatal("action never ran")
	}
	return captured
}

func TestContext_TypedGetters(t *testing.T) {
	ctx := captureContext(t, func(*App) {},
		[]string{"probe", "db", "--host", "example.com", "--port", "5432", "-s"})

	if got := ctx.String("target"); got != "db" {
		t.Errorf("target = %q", got)
	}
	if got := ctx.String("host"); got != "example.com" {
		t.Errorf("host = %q", got)
	}
	if got := ctx.Number("port"); got != 5432 {
		t.Errorf("port = %v", got)
	}
	if !ctx.Bool("secure") {
		t.Error("secure should be true")
	}
	if got := ctx.String("missing"); got != "" {
		t.Errorf("missing string = %q, want empty", got)
	}
	if got := ctx.Number("missing"); got != 0 {
		t.Errorf("missing number = %v, want 0", got)
	}
}

func TestContext_PathAndRawArgv(t *testing.T) {
	argv := []string{"probe", "db"}
	ctx := captureContext(t, func(*App) {}, argv)

	if len(ctx.Path()) != 1 || ctx.Path()[0] != "probe" {
		t.Errorf("path = %v", ctx.Path())
	}
	if len(ctx.RawArgv()) != len(argv) || ctx.RawArgv()[0] != "probe" {
		t.Errorf("raw argv = %v", ctx.RawArgv())
	}
	if ctx.Command() == nil || ctx.Command().Name() != "probe" {
		t.Errorf("command = %v", ctx.Command())
	}
}

func TestContext_IsSetDistinguishesExplicit(t *testing.T) {
	ctx := captureContext(t, func(*App) {}, []string{"probe", "--host", "example.com"})

	if !ctx.IsSet("host") {
		t.Error("host was passed explicitly")
	}
	if ctx.IsSet("port") {
		t.Error("port came from its default, not a flag")
	}
	if got := ctx.Number("port"); got != 8080 {
		t.Errorf("port default = %v", got)
	}
}

func TestContext_VariadicCapture(t *testing.T) {
	ctx := captureContext(t, func(*App) {}, []string{"probe", "db", "a", "b"})

	extras := ctx.Strings("extras")
	if len(extras) != 2 || extras[0] != "a" || extras[1] != "b" {
		t.Errorf("extras = %v", extras)
	}
}

func TestBinder_CopiesMatchingValues(t *testing.T) {
	ctx := captureContext(t, func(*App) {},
		[]string{"probe", "db", "--port", "5432", "-s"})

	var target, host string
	var port float64
	var secure bool
	err := ctx.Bind().
		String(&target, "target").
		String(&host, "host").
		Number(&port, "port").
		Bool(&secure, "secure").
		Apply()
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if target != "db" || host != "localhost" || port != 5432 || !secure {
		t.Errorf("bound %q %q %v %v", target, host, port, secure)
	}
}

func TestBinder_AbsentValueLeavesDestination(t *testing.T) {
	ctx := captureContext(t, func(*App) {}, []string{"probe"})

	preset := "unchanged"
	if err := ctx.Bind().String(&preset, "no-such-value").Apply(); err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if preset != "unchanged" {
		t.Errorf("destination overwritten to %q", preset)
	}
}

// Mismatches are collected across the whole binding, and no mismatched
// destination is written.
func TestBinder_CollectsEveryMismatch(t *testing.T) {
	ctx := captureContext(t, func(*App) {}, []string{"probe", "--port", "5432"})

	var asString string
	var asNumber float64
	err := ctx.Bind().
		String(&asString, "port").
		Number(&asNumber, "host").
		Apply()
	if err == nil {
		t.Fatal("expected a bind error")
	}
	if !strings.Contains(err.Error(), `"port"`) {
		t.Errorf("error should name the first mismatch: %v", err)
	}
	if asString != "" || asNumber != 0 {
		t.Errorf("mismatched destinations written: %q %v", asString, asNumber)
	}
}
