// declarative_test.go - Tests for YAML-declared schemas
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"bytes"
	"strings"
	"testing"
)

const calcSpec = `
name: calc
version: 2.1.0
description: A declarative calculator
default: sum
options:
  - name: verbose
    short: v
    type: bool
    description: Chatty output
middleware:
  - audit
commands:
  - name: sum
    description: Add numbers
    aliases: [add]
    action: sum
    arguments:
      - name: values
        type: number
        required: true
        variadic: true
    options:
      - name: precision
        short: p
        type: number
        default: 2
        env: CALC_PRECISION
        validator: precision-range
  - name: internal-dump
    hidden: true
    action: sum
`

func calcRegistry(log *[]string, got *[]float64) Registry {
	return Registry{
		Actions: map[string]ActionFunc{
			"sum": func(ctx *Context) error {
				*got = ctx.Numbers("values")
				return nil
			},
		},
		Middleware: map[string]Middleware{
			"audit": func(ctx *Context) error {
				*log = append(*log, "audit")
				return ctx.Next()
			},
		},
		Validators: map[string]Validator{
			"precision-range": Rules().Min(0).Max(10),
		},
	}
}

func TestLoadSpec_BuildsWorkingApp(t *testing.T) {
	var log []string
	var got []float64
	app, err := LoadSpec([]byte(calcSpec), calcRegistry(&log, &got))
	if err != nil {
		t.Fatalf("LoadSpec() = %v", err)
	}

	if app.Name() != "calc" || app.Version() != "2.1.0" {
		t.Errorf("identity = %q %q", app.Name(), app.Version())
	}

	var out, errOut bytes.Buffer
	app.SetOutput(&out).SetErrorOutput(&errOut).SetEnvLookup(MapEnv(nil))

	if code := app.Run([]string{"sum", "1", "2", "3"}); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut.String())
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("values = %v", got)
	}
	if len(log) != 1 || log[0] != "audit" {
		t.Errorf("middleware log = %v", log)
	}
}

func TestLoadSpec_AliasAndDefaultRouting(t *testing.T) {
	var log []string
	var got []float64
	app, err := LoadSpec([]byte(calcSpec), calcRegistry(&log, &got))
	if err != nil {
		t.Fatalf("LoadSpec() = %v", err)
	}
	var out, errOut bytes.Buffer
	app.SetOutput(&out).SetErrorOutput(&errOut).SetEnvLookup(MapEnv(nil))

	if code := app.Run([]string{"add", "4", "5"}); code != 0 {
		t.Fatalf("alias run exit = %d", code)
	}
	if len(got) != 2 {
		t.Errorf("alias values = %v", got)
	}

	got = nil
	if code := app.Run([]string{"7"}); code != 0 {
		t.Fatalf("default-command exit = %d, stderr = %q", code, errOut.String())
	}
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("default-command values = %v", got)
	}
}

func TestLoadSpec_ValidatorAndEnvWiredThrough(t *testing.T) {
	var log []string
	var got []float64
	app, err := LoadSpec([]byte(calcSpec), calcRegistry(&log, &got))
	if err != nil {
		t.Fatalf("LoadSpec() = %v", err)
	}
	var out, errOut bytes.Buffer
	app.SetOutput(&out).SetErrorOutput(&errOut).
		SetEnvLookup(MapEnv(map[string]string{"CALC_PRECISION": "99"}))

	// Environment supplies 99, the declared validator caps at 10.
	if code := app.Run([]string{"sum", "1"}); code != 1 {
		t.Fatalf("exit = %d, want validation failure", code)
	}
	if !strings.Contains(errOut.String(), "Error: ") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestLoadSpec_HiddenCommandOmittedFromHelp(t *testing.T) {
	var log []string
	var got []float64
	app, err := LoadSpec([]byte(calcSpec), calcRegistry(&log, &got))
	if err != nil {
		t.Fatalf("LoadSpec() = %v", err)
	}
	var out bytes.Buffer
	app.SetOutput(&out).SetEnvLookup(MapEnv(nil))

	if code := app.Run([]string{"--help"}); code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if strings.Contains(out.String(), "internal-dump") {
		t.Errorf("hidden command leaked into help:\n%s", out.String())
	}
}

func TestLoadSpec_Rejections(t *testing.T) {
	reg := Registry{Actions: map[string]ActionFunc{"ok": func(*Context) error { return nil }}}

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing_app_name",
			doc:  "version: 1.0.0",
			want: "name",
		},
		{
			name: "unknown_action",
			doc: "name: x\ncommands:\n  - name: run\n    action: nope",
			want: `unknown action "nope"`,
		},
		{
			name: "unknown_validator",
			doc: "name: x\ncommands:\n  - name: run\n    action: ok\n    options:\n      - name: level\n        validator: nope",
			want: `unknown validator "nope"`,
		},
		{
			name: "unknown_middleware",
			doc:  "name: x\nmiddleware: [nope]",
			want: `unknown middleware "nope"`,
		},
		{
			name: "unknown_type",
			doc: "name: x\ncommands:\n  - name: run\n    action: ok\n    options:\n      - name: level\n        type: decimal",
			want: `unknown type "decimal"`,
		},
		{
			name: "default_type_mismatch",
			doc: "name: x\ncommands:\n  - name: run\n    action: ok\n    options:\n      - name: level\n        type: number\n        default: high",
			want: "does not match declared type",
		},
		{
			name: "undeclared_default_command",
			doc:  "name: x\ndefault: ghost",
			want: `default command "ghost"`,
		},
		{
			name: "variadic_not_last",
			doc: "name: x\ncommands:\n  - name: run\n    action: ok\n    arguments:\n      - name: files\n        variadic: true\n      - name: dest",
			want: "variadic",
		},
		{
			name: "malformed_yaml",
			doc:  "name: [unterminated",
			want: "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSpec([]byte(tt.doc), reg)
			if err == nil {
				t.Fatal("expected a load error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q missing %q", err.Error(), tt.want)
			}
		})
	}
}

// A number default written as a YAML integer behaves as a float at
// runtime, same as the builder path.
func TestLoadSpec_WidensIntegerDefaults(t *testing.T) {
	var seen float64
	reg := Registry{Actions: map[string]ActionFunc{
		"show": func(ctx *Context) error {
			seen = ctx.Number("level")
			return nil
		},
	}}
	doc := "name: x\ncommands:\n  - name: run\n    action: show\n    options:\n      - name: level\n        type: number\n        default: 5"

	app, err := LoadSpec([]byte(doc), reg)
	if err != nil {
		t.Fatalf("LoadSpec() = %v", err)
	}
	var out bytes.Buffer
	app.SetOutput(&out).SetErrorOutput(&out).SetEnvLookup(MapEnv(nil))
	if code := app.Run([]string{"run"}); code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if seen != 5 {
		t.Errorf("level = %v, want 5", seen)
	}
}
