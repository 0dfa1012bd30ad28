// Package errors provides structured error handling for the Anvil engine.
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
	// KindRegistry indicates a widget or attribute registry error.
	KindRegistry
	// KindApply indicates a failure while applying an attribute to a target.
	KindApply
	// KindDispatch indicates a failure delivering a message from a native event.
	KindDispatch
	// KindDecode indicates a failure decoding wire or metadata input.
	KindDecode
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindRegistry:
		return "registry"
	case KindApply:
		return "apply"
	case KindDispatch:
		return "dispatch"
	case KindDecode:
		return "decode"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// AnvilError represents a structured error in the Anvil engine.
type AnvilError struct {
	// Op is the operation that failed (e.g., "core.CreateView").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Attribute is the attribute name involved, if applicable.
	Attribute string
	// Widget is the widget definition name involved, if applicable.
	Widget string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *AnvilError) Error() string {
	switch {
	case e.Attribute != "":
		return fmt.Sprintf("%s [%s] attribute=%s: %v", e.Op, e.Kind, e.Attribute, e.Err)
	case e.Widget != "":
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	default:
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *AnvilError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.Dispatch").
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

// DecodeError represents a failure to decode wire or metadata input.
type DecodeError struct {
	// Source names the input being decoded (file path or channel name).
	Source string
	// DataType is the expected type or kind name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s from %s: got %T", e.DataType, e.Source, e.Got)
}

// ErrorHandler receives errors reported by the Anvil engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *AnvilError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
