package fault

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/google/uuid"
)

// newError allocates an Error with a fresh correlation ID and an origin
// trace that starts at the exported constructor's caller. skip counts the
// constructor frames between the caller and newError.
func newError(name, message string, cause error, skip int) *Error {
	return &Error{
		Name:    name,
		Message: message,
		Cause:   cause,
		Stack:   captureStack(skip + 1),
		ID:      uuid.NewString(),
	}
}

// New creates a new Error with the given message and, optionally, a single
// cause. Only the first cause is used; the variadic form exists so call
// sites without a cause stay terse.
//
// Example:
//
//	return fault.New("load profile failed", err)
func New(message string, cause ...error) *Error {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return newError("", message, c, 1)
}

// Newf creates a new Error with a formatted message and no cause.
//
// Example:
//
//	return fault.Newf("profile %q not found", id)
func Newf(format string, args ...any) *Error {
	return newError("", fmt.Sprintf(format, args...), nil, 1)
}

// Named creates a new Error with an explicit display name. The name is
// rendered as a "Name: " prefix in chain segments, the way a foreign error
// type's name would be.
//
// Example:
//
//	return fault.Named("QuotaError", "monthly limit reached")
func Named(name, message string, cause ...error) *Error {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return newError(name, message, c, 1)
}

// Wrap wraps an existing error with an additional message, forming the next
// link of the cause chain. If err is nil, Wrap returns nil, so it can be
// applied unconditionally on a return path.
//
// Example:
//
//	rows, err := pool.Query(ctx, sql)
//	if err != nil {
//	    return fault.Wrap(err, "fetch users failed")
//	}
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return newError("", message, err, 1)
}

// Wrapf wraps an existing error with a formatted message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return newError("", fmt.Sprintf(format, args...), err, 1)
}

// WithContext returns a constructor with the same shape as [New] that
// attaches defaultCtx to every error it builds. Use it to pre-bind a
// recurring context, such as a component tag, without repeating it at
// every call site:
//
//	var storeErr = fault.WithContext(map[string]any{"component": "store"})
//	...
//	return storeErr("open bucket failed", err)
//
// The default map is cloned once up front; later mutation of the caller's
// map does not leak into constructed errors.
func WithContext(defaultCtx map[string]any) func(message string, cause ...error) *Error {
	bound := cloneMap(defaultCtx)
	return func(message string, cause ...error) *Error {
		var c error
		if len(cause) > 0 {
			c = cause[0]
		}
		return newError("", message, c, 1).Ctx(bound)
	}
}

// FromError converts any error into a *Error. A nil error stays nil and an
// existing *Error is returned as-is (same pointer). Anything else is
// promoted with an empty own message, so the chain gains no meaningless
// segment when the conversion layer is the originator of the wrapping.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return newError("", "", err, 1)
}

// FromPanic normalizes a recovered panic value into a *Error:
//
//   - a *Error passes through unchanged
//   - any other error is promoted directly, keeping its type-derived name
//     and message rather than nesting it as an extra chain link
//   - a string becomes the error message verbatim
//   - nil (and the runtime's panic-with-nil marker) becomes "nil"
//   - anything else is rendered with fmt.Sprint
//
// FromPanic itself must not fail; a panic inside it is a programming bug
// in this package, not a recoverable condition.
func FromPanic(v any) *Error {
	switch val := v.(type) {
	case nil:
		return newError("", "nil", nil, 1)
	case *runtime.PanicNilError:
		return newError("", "nil", nil, 1)
	case *Error:
		return val
	case error:
		return newError(errorName(val), val.Error(), nil, 1)
	case string:
		return newError("", val, nil, 1)
	default:
		return newError("", fmt.Sprint(val), nil, 1)
	}
}

// errorName derives a display name from an error's dynamic type. The
// standard library's anonymous error shapes (errors.New, fmt.Errorf,
// errors.Join) report no name: by convention those render as bare messages.
func errorName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	switch name := t.Name(); name {
	case "errorString", "wrapError", "wrapErrors", "joinError":
		return ""
	default:
		return name
	}
}

// cloneMap returns a shallow copy of in, or nil for an empty map.
func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
