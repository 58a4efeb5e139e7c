// Package errors provides structured error handling for the Ember runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidParameter indicates malformed geometry or a nil required argument.
	KindInvalidParameter
	// KindNoActiveWindow indicates widget creation without an active window context.
	KindNoActiveWindow
	// KindNotAWindow indicates a non-top-level widget used where a window was required.
	KindNotAWindow
	// KindNotFocusable indicates focus requested on a widget without the focus capability.
	KindNotFocusable
	// KindAllocation indicates widget or timer storage exhaustion.
	KindAllocation
	// KindDisplayInit indicates a display adapter initialization failure.
	KindDisplayInit
	// KindStaleHandle indicates use of a handle whose widget was destroyed.
	KindStaleHandle
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid parameter"
	case KindNoActiveWindow:
		return "no active window"
	case KindNotAWindow:
		return "not a window"
	case KindNotFocusable:
		return "not focusable"
	case KindAllocation:
		return "allocation"
	case KindDisplayInit:
		return "display init"
	case KindStaleHandle:
		return "stale handle"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the Ember runtime.
type Error struct {
	// Op is the operation that failed (e.g., "engine.CreateWidget").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error, if any.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an Error with the given operation and kind.
func New(op string, kind ErrorKind) *Error {
	return &Error{Op: op, Kind: kind, Timestamp: time.Now()}
}

// Newf constructs an Error wrapping a formatted underlying error.
func Newf(op string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...), Timestamp: time.Now()}
}

// KindOf returns the ErrorKind of err: the Kind of an *Error, KindPanic
// for a recovered *PanicError, KindUnknown otherwise.
func KindOf(err error) ErrorKind {
	switch e := err.(type) {
	case *Error:
		return e.Kind
	case *PanicError:
		return KindPanic
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.redraw").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the Ember runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
