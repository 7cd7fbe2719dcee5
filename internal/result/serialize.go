package result

import (
	"errors"
	"fmt"
)

// maxCauseDepth bounds cause chains so cyclic Unwrap implementations terminate
const maxCauseDepth = 32

// SerializedError is a plain copy of an error chain that can cross a
// context boundary
type SerializedError struct {
	Name    string           `json:"name" msgpack:"name"`
	Message string           `json:"message" msgpack:"message"`
	Stack   string           `json:"stack,omitempty" msgpack:"stack,omitempty"`
	Cause   *SerializedError `json:"cause,omitempty" msgpack:"cause,omitempty"`
}

// Error implements the error interface
func (e *SerializedError) Error() string {
	return e.Message
}

// Unwrap returns the next error in the chain
func (e *SerializedError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// SerializeError deep-copies err and its cause chain
func SerializeError(err error) *SerializedError {
	return serializeError(err, 0)
}

func serializeError(err error, depth int) *SerializedError {
	if err == nil || depth >= maxCauseDepth {
		return nil
	}

	var name string
	switch e := err.(type) {
	case *SerializedError:
		name = e.Name
	case *Error:
		name = "ResultError"
	default:
		name = fmt.Sprintf("%T", err)
	}

	return &SerializedError{
		Name:    name,
		Message: err.Error(),
		Cause:   serializeError(errors.Unwrap(err), depth+1),
	}
}

// Serialized is the plain wire form of a Result
type Serialized[T any] struct {
	OK        bool             `json:"ok" msgpack:"ok"`
	Value     T                `json:"value,omitempty" msgpack:"value,omitempty"`
	ErrorType Kind             `json:"errorType,omitempty" msgpack:"errorType,omitempty"`
	Message   string           `json:"message,omitempty" msgpack:"message,omitempty"`
	Error     *SerializedError `json:"error,omitempty" msgpack:"error,omitempty"`
	Metadata  Metadata         `json:"metadata,omitempty" msgpack:"metadata,omitempty"`
}

// Serialize converts r into its wire form
func Serialize[T any](r Result[T]) Serialized[T] {
	if r.IsOk() {
		return Serialized[T]{OK: true, Value: r.value}
	}
	return Serialized[T]{
		OK:        false,
		ErrorType: r.err.Kind,
		Message:   r.err.Message,
		Error:     SerializeError(r.err.Cause),
		Metadata:  cloneMetadata(r.err.Metadata),
	}
}

// Result reconstructs the Result. The cause, if any, becomes a
// *SerializedError chain.
func (s Serialized[T]) Result() Result[T] {
	if s.OK {
		return Ok(s.Value)
	}
	var cause error
	if s.Error != nil {
		cause = s.Error
	}
	return Fail[T](s.ErrorType, s.Message, cause, cloneMetadata(s.Metadata))
}

// cloneMetadata deep-copies m. Numbers become float64 so that metadata
// compares equal after a round trip through either codec.
func cloneMetadata(m Metadata) Metadata {
	if m == nil {
		return Metadata{}
	}
	cp := make(Metadata, len(m))
	for k, v := range m {
		cp[k] = cloneValue(v)
	}
	return cp
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Metadata:
		return cloneMetadata(t)
	case map[string]any:
		return map[string]any(cloneMetadata(Metadata(t)))
	case []any:
		cp := make([]any, len(t))
		for i := range t {
			cp[i] = cloneValue(t[i])
		}
		return cp
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return t
	}
}
