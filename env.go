// env.go: Read-only environment access for Blic
//
// The option parser never touches the process environment directly; it
// goes through an injected accessor, so tests supply fixed environments
// without mutating real process state.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import "os"

// EnvLookup reads one environment variable, reporting whether it was set.
type EnvLookup func(key string) (string, bool)

// OSEnv is the default accessor, backed by the process environment.
func OSEnv() EnvLookup {
	return os.LookupEnv
}

// MapEnv builds an accessor over a fixed map, for tests and sandboxed runs.
func MapEnv(vars map[string]string) EnvLookup {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}
