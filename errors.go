// errors.go: Error taxonomy and batch accumulation for Blic
//
// Every failure the parsers can produce falls into one of five kinds.
// Errors from a single parse pass are accumulated, not raised one by one,
// so a run reports every problem it found.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"strings"

	"github.com/agilira/go-errors"
)

// Error codes for Blic operations
const (
	ErrCodeInvalidSchema    = "BLIC_INVALID_SCHEMA"
	ErrCodeInvalidSpec      = "BLIC_INVALID_SPEC"
	ErrCodeInvalidType      = "BLIC_INVALID_TYPE"
	ErrCodeMissingRequired  = "BLIC_MISSING_REQUIRED"
	ErrCodeUnknownOption    = "BLIC_UNKNOWN_OPTION"
	ErrCodeUnknownCommand   = "BLIC_UNKNOWN_COMMAND"
	ErrCodeValidationFailed = "BLIC_VALIDATION_FAILED"
	ErrCodeBindFailed       = "BLIC_BIND_FAILED"
	ErrCodeActionPanic      = "BLIC_ACTION_PANIC"
)

// ErrorKind classifies a ValidationError.
type ErrorKind int

const (
	// MissingRequired marks a required option or argument with no value
	// from any source (flag, environment, default).
	MissingRequired ErrorKind = iota

	// InvalidType marks a raw value that failed coercion to its declared type.
	InvalidType

	// UnknownOption marks a flag token matching no declared option.
	UnknownOption

	// UnknownCommand marks an unresolved command segment.
	UnknownCommand

	// ValidationFailed marks a validator rejection of a final value.
	ValidationFailed
)

// String returns the canonical name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case MissingRequired:
		return "missing_required"
	case InvalidType:
		return "invalid_type"
	case UnknownOption:
		return "unknown_option"
	case UnknownCommand:
		return "unknown_command"
	case ValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// code maps the kind to its Blic error code.
func (k ErrorKind) code() string {
	switch k {
	case MissingRequired:
		return ErrCodeMissingRequired
	case InvalidType:
		return ErrCodeInvalidType
	case UnknownOption:
		return ErrCodeUnknownOption
	case UnknownCommand:
		return ErrCodeUnknownCommand
	default:
		return ErrCodeValidationFailed
	}
}

// ValidationError is a single parse or validation failure. Field names the
// offending option or argument when one exists; resolution-level failures
// leave it empty.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Coded returns the failure as a coded error for callers that route on
// error codes rather than kinds.
func (e *ValidationError) Coded() error {
	coded := errors.New(errors.ErrorCode(e.Kind.code()), e.Message)
	if e.Field != "" {
		return coded.WithContext("field", e.Field)
	}
	return coded
}

// ErrorList accumulates ValidationErrors across a parse pass. The zero
// value is ready to use.
type ErrorList struct {
	errs []*ValidationError
}

// Add appends a failure to the list.
func (l *ErrorList) Add(kind ErrorKind, field, message string) {
	l.errs = append(l.errs, &ValidationError{Kind: kind, Field: field, Message: message})
}

// Append merges another list into this one, preserving order.
func (l *ErrorList) Append(other *ErrorList) {
	if other != nil {
		l.errs = append(l.errs, other.errs...)
	}
}

// Empty reports whether the pass produced no failures.
func (l *ErrorList) Empty() bool {
	return len(l.errs) == 0
}

// Len returns the number of accumulated failures.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Errors returns the accumulated failures in insertion order.
func (l *ErrorList) Errors() []*ValidationError {
	return l.errs
}

// Error implements the error interface, joining messages one per line.
func (l *ErrorList) Error() string {
	msgs := make([]string, len(l.errs))
	for i, e := range l.errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "\n")
}
