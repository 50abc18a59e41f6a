// Package errors carries the service-wide error taxonomy.
//
// Every failure crossing a component boundary is tagged with a Kind so
// transports and callers can classify without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and transports.
type Kind int

const (
	// KindUnknown is the zero value for untagged errors.
	KindUnknown Kind = iota

	// KindInvalidArgument marks caller mistakes (bad time window, empty
	// question). Surfaced verbatim, never retried.
	KindInvalidArgument

	// KindNotFound marks a subject with no recent self-report data. Not
	// an anomaly; surfaced to the caller without alarm logging.
	KindNotFound

	// KindProviderDegraded marks an external provider failure that was
	// absorbed (embedding channel zeroed). Observable, never fatal.
	KindProviderDegraded

	// KindPersistenceFailure marks a store write error. Fatal for the
	// request; nothing is partially committed.
	KindPersistenceFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindProviderDegraded:
		return "provider_degraded"
	case KindPersistenceFailure:
		return "persistence_failure"
	default:
		return "unknown"
	}
}

// Error is a kind-tagged error that supports errors.Is/As unwrapping.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// New builds a tagged error from a message.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Newf builds a tagged error from a format string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error, keeping it reachable via Unwrap.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf extracts the Kind from anywhere in the error chain.
// Returns KindUnknown for nil or untagged errors.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is tagged KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidArgument reports whether err is tagged KindInvalidArgument.
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }
