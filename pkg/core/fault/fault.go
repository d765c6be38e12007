// Package fault classifies every error the scheduling core can surface so
// callers can decide between fixing input, refreshing state, and retrying.
package fault

import (
	"errors"
	"fmt"
)

// Kind is the recovery category of a fault
type Kind string

const (
	// KindValidation marks malformed input; the operation never reached the store
	KindValidation Kind = "validation"
	// KindNotFound marks a reference to an entity that no longer exists
	KindNotFound Kind = "not_found"
	// KindConflict marks an invariant violation or illegal transition;
	// the caller may retry against fresh state
	KindConflict Kind = "conflict"
	// KindTransient marks a network or timeout failure; the core never
	// auto-retries to avoid duplicating writes
	KindTransient Kind = "transient"
)

// Fault is an error with a recovery category
type Fault struct {
	Kind Kind
	Msg  string
	Err  error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Msg, f.Err)
	}
	return f.Msg
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Validation builds a validation fault
func Validation(format string, args ...any) *Fault {
	return &Fault{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found fault
func NotFound(format string, args ...any) *Fault {
	return &Fault{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a conflict fault
func Conflict(format string, args ...any) *Fault {
	return &Fault{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Transient wraps a store or network error that may succeed on retry
func Transient(err error, format string, args ...any) *Fault {
	return &Fault{Kind: KindTransient, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the fault kind of err, or empty if err carries no fault
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation fault
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a not-found fault
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a conflict fault
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsTransient reports whether err is safe to retry from the caller's side
func IsTransient(err error) bool { return KindOf(err) == KindTransient }
