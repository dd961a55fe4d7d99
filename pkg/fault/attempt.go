package fault

// Result is the explicit two-branch value standing in for "value or
// error". Exactly one branch is meaningful: Err is nil on success and
// non-nil on failure, in which case Value is the zero value of T.
type Result[T any] struct {
	Value T
	Err   *Error
}

// Ok reports whether the result holds the success branch.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// Unpack returns both branches, for callers that prefer the conventional
// two-value form at the receiving end of an [AttemptAsync] channel.
func (r Result[T]) Unpack() (T, *Error) {
	return r.Value, r.Err
}

// Attempt runs op and converts both of its failure channels into an
// explicit return value: a returned error is normalized via [FromError]
// and a panic is recovered and normalized via [FromPanic]. On success the
// returned *Error is nil and the value is exactly what op returned.
//
// Nothing escapes Attempt. The only exception that can still propagate is
// a panic raised by the normalization path itself, which indicates a bug
// in this package rather than a recoverable condition.
//
// Example:
//
//	cfg, ferr := fault.Attempt(func() (Config, error) {
//	    return parseConfig(raw)
//	})
//	if ferr != nil {
//	    return ferr.Ctx(map[string]any{"source": path})
//	}
func Attempt[T any](op func() (T, error)) (val T, ferr *Error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			val = zero
			ferr = FromPanic(r)
		}
	}()

	v, err := op()
	if err != nil {
		var zero T
		return zero, FromError(err)
	}
	return v, nil
}

// AttemptAsync runs op in its own goroutine and returns a channel that
// delivers exactly one [Result] — the eventual counterpart of [Attempt],
// with identical normalization. The channel is buffered, so the worker
// never blocks on a receiver that has moved on, and it is closed after the
// result is delivered.
//
// There is no cancellation: once started, op runs to completion. Callers
// needing a deadline should select on the channel and their own timer, and
// let the abandoned result be dropped.
//
// Example:
//
//	resCh := fault.AttemptAsync(func() ([]byte, error) {
//	    return fetchSnapshot(url)
//	})
//	// ... other work ...
//	snap, ferr := (<-resCh).Unpack()
func AttemptAsync[T any](op func() (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		v, ferr := Attempt(op)
		out <- Result[T]{Value: v, Err: ferr}
	}()
	return out
}
