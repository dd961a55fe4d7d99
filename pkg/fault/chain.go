package fault

import (
	"errors"
	"strings"
)

// chainJoin separates segments in the formatted cause chain.
const chainJoin = " -> "

// unknownChain is returned by Chain when every segment is blank, so the
// final rendering is never an empty string.
const unknownChain = "Unknown error"

// noStack is returned by RootStack when no link in the chain carries a
// non-blank origin trace.
const noStack = "<no stack>"

// Chain formats the full cause chain as a single line. Optional prepend
// segments are placed before this error's own message; each cause
// contributes one segment, from this error down to the root. A segment is
// the link's own message, prefixed with "Name: " when the link carries a
// non-default name; a generic (non-*Error) cause contributes its Error()
// text and terminates the walk, since generic errors conventionally render
// their own wrapped causes inline.
//
// Blank segments are dropped and the remainder joined with " -> ". When
// nothing remains the literal "Unknown error" is returned, so the result
// is always presentable.
//
// Example:
//
//	log.Error(ferr.Chain("sync aborted"))
//	// sync aborted -> push batch failed -> connection refused
func (e *Error) Chain(prepend ...string) string {
	segments := make([]string, 0, len(prepend)+4)
	segments = append(segments, prepend...)

	var link error = e
	for depth := 0; link != nil && depth < maxChainDepth; depth++ {
		fe, ok := link.(*Error)
		if !ok {
			// Generic errors render their own chain; recursing past them
			// would duplicate text.
			segments = append(segments, link.Error())
			break
		}
		if fe == nil {
			break
		}
		if fe.Name != "" {
			segments = append(segments, fe.Name+": "+fe.Message)
		} else {
			segments = append(segments, fe.Message)
		}
		link = fe.Cause
	}

	kept := segments[:0]
	for _, s := range segments {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return unknownChain
	}
	return strings.Join(kept, chainJoin)
}

// Get returns the value stored under key anywhere in the cause chain,
// prioritizing the deepest match: the cause's chain is consulted first and
// the receiver's own context is the fallback. A key set close to the root
// therefore shadows the same key set by later wrapping layers, on the
// grounds that the deepest attachment was closest to the failure.
//
// The boolean reports presence by key existence, so stored zero values and
// nils are returned faithfully. Context traversal follows the chain only
// through *Error links; generic intermediate errors are skipped via
// errors.As.
func (e *Error) Get(key string) (any, bool) {
	if e == nil {
		return nil, false
	}
	return e.get(key, 0)
}

func (e *Error) get(key string, depth int) (any, bool) {
	if depth < maxChainDepth {
		var next *Error
		if errors.As(e.Cause, &next) && next != nil {
			if v, ok := next.get(key, depth+1); ok {
				return v, true
			}
		}
	}
	v, ok := e.Context[key]
	return v, ok
}

// GetAll returns every value stored under key across the cause chain,
// ordered from this error (shallowest) down to the root cause (deepest).
// Links lacking the key are skipped without breaking the scan, and generic
// intermediate errors are stepped over as long as a *Error link exists
// further down. The result is nil when no link carries the key.
func (e *Error) GetAll(key string) []any {
	var out []any
	link := e
	for depth := 0; link != nil && depth < maxChainDepth; depth++ {
		if v, ok := link.Context[key]; ok {
			out = append(out, v)
		}
		var next *Error
		if !errors.As(link.Cause, &next) {
			break
		}
		link = next
	}
	return out
}

// FlatContext returns the merged context of the whole chain as a single
// map, with the deepest value winning per key — the same precedence as
// [Error.Get]. The returned map is freshly allocated; mutating it does not
// affect the chain. Useful for dumping every attached key into a log
// record or span in one call.
func (e *Error) FlatContext() map[string]any {
	merged := make(map[string]any)
	link := e
	for depth := 0; link != nil && depth < maxChainDepth; depth++ {
		// The walk runs shallow to deep, so a plain overwrite leaves the
		// deepest value in place for every key.
		for k, v := range link.Context {
			merged[k] = v
		}
		var next *Error
		if !errors.As(link.Cause, &next) {
			break
		}
		link = next
	}
	return merged
}

// RootStack returns the origin trace of the deepest link in the chain that
// captured one, or "<no stack>" when no link carries a non-blank trace.
// Construction frames internal to this package are already excluded at
// capture time, so the first line is the failing call site.
func (e *Error) RootStack() string {
	deepest := ""
	link := e
	for depth := 0; link != nil && depth < maxChainDepth; depth++ {
		if strings.TrimSpace(link.Stack) != "" {
			deepest = link.Stack
		}
		var next *Error
		if !errors.As(link.Cause, &next) {
			break
		}
		link = next
	}
	if deepest == "" {
		return noStack
	}
	return deepest
}

// Get is the generic free-function form of [Error.Get]: it locates the
// nearest *Error in err's chain, resolves key with deepest-match-wins
// semantics, and asserts the value to T. The boolean is false when the key
// is absent or the stored value has a different type.
func Get[T any](err error, key string) (T, bool) {
	var zero T
	f, ok := AsFault(err)
	if !ok {
		return zero, false
	}
	v, ok := f.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// GetAll is the generic free-function form of [Error.GetAll]. Values that
// are not assertable to T are dropped from the result.
func GetAll[T any](err error, key string) []T {
	f, ok := AsFault(err)
	if !ok {
		return nil
	}
	var out []T
	for _, v := range f.GetAll(key) {
		if t, ok := v.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// FlatContext is the free-function form of [Error.FlatContext]: it locates
// the nearest *Error in err's chain and returns the merged chain context.
// Foreign errors yield an empty map.
func FlatContext(err error) map[string]any {
	f, ok := AsFault(err)
	if !ok {
		return map[string]any{}
	}
	return f.FlatContext()
}
