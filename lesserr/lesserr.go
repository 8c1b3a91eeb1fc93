// Package lesserr defines the error type shared by every compilation stage.
// An Error carries the failure kind and the source position it was raised at;
// stages closer to the input fill in position, outer stages pass it through
// unchanged so the CLI prints a single diagnostic.
package lesserr

import (
	"errors"
	"fmt"
)

// Kind classifies a compilation failure.
type Kind string

const (
	Parse            Kind = "parse"
	Value            Kind = "value"
	Type             Kind = "type"
	Arithmetic       Kind = "arithmetic"
	VariableNotFound Kind = "variable not found"
	MixinNotFound    Kind = "mixin not found"
	FunctionArity    Kind = "function arity"
	RecursionLimit   Kind = "recursion limit"
	Import           Kind = "import"
)

// Error is the diagnostic type returned from Compile.
type Error struct {
	Kind    Kind
	Message string
	File    string
	Line    int
	Column  int

	// Err holds a wrapped cause (loader failures, parse errors from
	// imported files).
	Err error
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Line, e.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error without position information. Position is attached by
// the stage that knows it, via At.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// At returns a copy of the error annotated with a source position. An error
// that already carries a position keeps it: the innermost site wins.
func At(err *Error, file string, line, column int) *Error {
	if err.File != "" {
		return err
	}
	clone := *err
	clone.File = file
	clone.Line = line
	clone.Column = column
	return &clone
}

// Expected is the conventional parse failure: found one thing while needing
// another.
func Expected(found, expected string) *Error {
	return New(Parse, "found %q when expecting %s", found, expected)
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
