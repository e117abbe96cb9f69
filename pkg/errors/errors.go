// Package errors provides structured error handling for gesture routing.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPrecondition indicates an API used outside its required binding state.
	KindPrecondition
	// KindPlatform indicates a native bridge or control failure.
	KindPlatform
	// KindParsing indicates a malformed event or message from native code.
	KindParsing
	// KindDetector indicates a failure inside a gesture detector.
	KindDetector
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid gesture configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindPlatform:
		return "platform"
	case KindParsing:
		return "parsing"
	case KindDetector:
		return "detector"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// GestureError represents a structured error raised while routing input.
type GestureError struct {
	// Op is the operation that failed (e.g., "gesturemanager.Dispatch").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// ViewID is the native control id, if one was bound.
	ViewID int64
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GestureError) Error() string {
	if e.ViewID != 0 {
		return fmt.Sprintf("%s [%s] view=%d: %v", e.Op, e.Kind, e.ViewID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *GestureError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "detectors.Scale.Feed").
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

// PreconditionError reports a call made while the receiver was not in the
// binding state the call requires, such as constructing a detector with no
// native input context.
type PreconditionError struct {
	// Op is the operation that was attempted.
	Op string
	// Reason describes the unmet requirement.
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed: %s", e.Op, e.Reason)
}

// IsPrecondition reports whether err or any error it wraps is a
// PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// ParseError represents a failure to decode event data from native code.
type ParseError struct {
	// Channel is the platform channel that received the event.
	Channel string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from channel %s: got %T", e.DataType, e.Channel, e.Got)
}

// ErrorHandler receives errors reported by driftgesture.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *GestureError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
