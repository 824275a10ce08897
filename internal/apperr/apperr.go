// Package apperr defines the stable failure kinds the engine reports to
// callers. Every user-visible failure carries a kind plus a human-readable
// message; anything unclassified surfaces as Internal with a generic message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a stable failure category.
type Kind string

const (
	// NotFound means a farmer, farm, crop, or loan identifier did not resolve.
	NotFound Kind = "not_found"
	// InvalidAmount means a monetary value was non-positive, out of range,
	// or an approved amount exceeded the requested amount.
	InvalidAmount Kind = "invalid_amount"
	// InvalidTransition means a loan state-machine guard was violated.
	InvalidTransition Kind = "invalid_transition"
	// AlreadyRepaid means a repayment was attempted on a fully repaid loan.
	AlreadyRepaid Kind = "already_repaid"
	// UpstreamUnavailable means an external signal provider failed.
	UpstreamUnavailable Kind = "upstream_unavailable"
	// Internal is the catch-all for unclassified failures.
	Internal Kind = "internal"
)

// Error pairs a failure kind with a message suitable for API responses.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// New creates an Error with the given kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Kind returns the failure category.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the user-visible message without wrapped detail.
func (e *Error) Message() string { return e.msg }

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.err }

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return Internal
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
