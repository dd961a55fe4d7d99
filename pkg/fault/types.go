package fault

import (
	"fmt"
)

// maxChainDepth bounds every cause-chain traversal. A well-formed chain is
// finite; the cap keeps formatting and lookup terminating when a caller has
// accidentally built a cycle. Links past the cap are ignored.
const maxChainDepth = 256

// Error is a structured error carrying an optional cause, an optional flat
// key/value context map, and an origin trace captured at construction.
// It implements the standard error interface; Error() renders the full
// cause chain, not just the own message.
//
// Error is designed to be:
//   - Chainable: at most one direct Cause, exposed via Unwrap() so
//     errors.Is and errors.As traverse the chain.
//   - Contextual: arbitrary key/value data attached at any propagation
//     site via Ctx, queried later via Get / GetAll.
//   - Presentable: Chain() always yields a non-empty human-readable line.
type Error struct {
	// Name is the display label for this error. The zero value is the
	// default tag and is omitted from chain segments; a non-empty Name is
	// rendered as a "Name: " prefix. Errors promoted from foreign error
	// types keep a name derived from the original type.
	Name string

	// Message is this error's own message. It does not include the cause
	// chain; use Chain or the error interface for the full rendering.
	Message string

	// Cause is the single underlying error, if any. It may be another
	// *Error or any generic error. Use Unwrap() (or errors.Is/As) for
	// chain inspection.
	Cause error

	// Context holds arbitrary key/value data attached to this error.
	// Presence is determined by key existence, not truthiness: zero
	// values and nil are legitimate entries. Populated lazily by Ctx.
	Context map[string]any

	// Stack is the origin trace captured when this error was constructed.
	// Empty for errors built literally rather than through a constructor.
	Stack string

	// ID is a unique correlation identifier assigned at construction,
	// intended for matching log lines and trace events to this fault.
	ID string
}

// Error implements the error interface. It returns the formatted cause
// chain, so plain %v / %s output and log lines already show the full story.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Chain()
}

// Unwrap returns the underlying cause, supporting errors.Unwrap,
// errors.Is, and errors.As from the standard library.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Ctx merges ctx into the error's context map and returns the same
// receiver for fluent chaining at each propagation site. Existing keys are
// overwritten by new values; nil and empty maps are ignored.
//
// Ctx mutates the receiver and is not synchronized. Attaching context to
// one error instance from multiple goroutines concurrently is undefined
// behavior; callers must confine an in-flight error to a single flow.
func (e *Error) Ctx(ctx map[string]any) *Error {
	if e == nil || len(ctx) == 0 {
		return e
	}
	if e.Context == nil {
		e.Context = make(map[string]any, len(ctx))
	}
	for k, v := range ctx {
		e.Context[k] = v
	}
	return e
}

// Format implements fmt.Formatter. Use %v for the chain rendering and %+v
// for a detailed one-line dump including name, context, and the cause.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e == nil {
				fmt.Fprint(s, "<nil>")
				return
			}
			fmt.Fprintf(s, "Error{ID: %q, Message: %q", e.ID, e.Message)
			if e.Name != "" {
				fmt.Fprintf(s, ", Name: %q", e.Name)
			}
			if len(e.Context) > 0 {
				fmt.Fprintf(s, ", Context: %v", e.Context)
			}
			if e.Cause != nil {
				fmt.Fprintf(s, ", Cause: %+v", e.Cause)
			}
			fmt.Fprint(s, "}")
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
