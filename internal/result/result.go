// Package result provides a tagged success/failure value used in place of
// plain errors for expected failure modes.
//
// A failed Result carries a Kind drawn from the closed KindSet of the
// operation that produced it, a message, an optional cause and metadata.
package result

import (
	"fmt"
)

// Void is the value type of results that carry no value
type Void = struct{}

// Metadata holds structured details about a failure. Values are primitives,
// time.Time, nested Metadata or slices of those.
type Metadata map[string]any

// Error is the failure variant of a Result
type Error struct {
	Kind     Kind
	Message  string
	Cause    error
	Metadata Metadata
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Result is either a value or an *Error, never both
type Result[T any] struct {
	value T
	err   *Error
}

// Ok creates a successful result
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail creates a failed result
func Fail[T any](kind Kind, message string, cause error, metadata Metadata) Result[T] {
	if metadata == nil {
		metadata = Metadata{}
	}
	return Result[T]{err: &Error{
		Kind:     kind,
		Message:  message,
		Cause:    cause,
		Metadata: metadata,
	}}
}

// FromError creates a failed result from an existing failure
func FromError[T any](err *Error) Result[T] {
	if err == nil {
		panic("result: FromError called with nil error")
	}
	return Result[T]{err: err}
}

// Forward re-types a failed result so it can be returned by a caller with a
// different value type. Forwarding a successful result is a programming error.
func Forward[U, T any](r Result[T]) Result[U] {
	if r.err == nil {
		panic("result: Forward called with successful result")
	}
	return Result[U]{err: r.err}
}

// IsOk reports whether the result is a success
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Value returns the success value, or the zero value for a failure
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, or nil for a success
func (r Result[T]) Err() *Error {
	return r.err
}

// Kind returns the failure kind, or "" for a success
func (r Result[T]) Kind() Kind {
	if r.err == nil {
		return ""
	}
	return r.err.Kind
}

// Unwrap converts the result into the conventional (value, error) pair
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		return r.value, r.err
	}
	return r.value, nil
}
