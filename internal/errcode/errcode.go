// Package errcode implements the two error tiers of the
// search's error taxonomy: user errors (surfaced to the command line,
// non-zero exit) and fatal errors (core invariant violations and I/O
// failures that abort the process). Interpreter classification results
// (interp.Outcome) are deliberately not errors — they are data the BFS
// driver consumes, never wrapped here.
package errcode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the preprocessor failures a user-supplied starting
// program can trigger.
type Kind string

const (
	UnmatchedClose Kind = "UnmatchedClose"
	UnmatchedOpen  Kind = "UnmatchedOpen"
)

// UserError is a typed failure from the preprocessor: the user's starting
// program has unbalanced brackets. It terminates the invoking command with
// a non-zero exit and a diagnostic, never a process abort.
type UserError struct {
	Kind  Kind
	Index int
}

func (e *UserError) Error() string {
	switch e.Kind {
	case UnmatchedClose:
		return fmt.Sprintf("unmatched close bracket at instruction %d", e.Index)
	case UnmatchedOpen:
		return fmt.Sprintf("unmatched open bracket at instruction %d", e.Index)
	default:
		return "malformed starting program"
	}
}

func NewUnmatchedClose(index int) *UserError {
	return &UserError{Kind: UnmatchedClose, Index: index}
}

func NewUnmatchedOpen(index int) *UserError {
	return &UserError{Kind: UnmatchedOpen, Index: index}
}

// Fatal wraps a core invariant violation or an I/O failure with a stack
// trace attached at the point of detection. There is no recovery path for
// a Fatal error: callers log it and abort the process (see cmd/tapesynth).
type Fatal struct {
	cause error
}

func (e *Fatal) Error() string {
	return e.cause.Error()
}

func (e *Fatal) Unwrap() error {
	return e.cause
}

// Wrap turns cause into a Fatal, attaching msg and a stack trace. Use for
// I/O errors on frontier files and anything else the search cannot recover
// from by construction.
func Wrap(cause error, msg string) *Fatal {
	return &Fatal{cause: errors.Wrap(cause, msg)}
}

// Newf builds a Fatal directly from a message, for invariant violations
// that have no underlying error value (e.g. "jump table entry still
// OpenPending after compilation").
func Newf(format string, args ...interface{}) *Fatal {
	return &Fatal{cause: errors.Errorf(format, args...)}
}
