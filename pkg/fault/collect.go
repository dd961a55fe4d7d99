package fault

import (
	"errors"
	"sync"
)

// Skip is the sentinel an item operation returns to exclude its item from
// both outputs of [FilterMap]. Modeled on fs.SkipDir: it signals control
// flow, not failure, and is never surfaced in the errors slice.
var Skip = errors.New("fault: skip item")

// FilterMap applies fn to every item and partitions the outcomes, in input
// order, into a values slice and a faults slice. Unlike [Attempt]'s
// fail-fast contract, a failing item does not abort its siblings:
//
//   - fn returns (v, nil): v is appended to the values slice
//   - fn returns [Skip] (possibly wrapped): the item is omitted entirely
//   - fn returns any other error, or panics: the normalized *Error is
//     appended to the faults slice
//
// The values slice is always non-nil and contiguous — omitted and failed
// items leave no holes. The faults slice is nil when every item succeeded,
// so "any failures?" is a nil check, not a length check.
//
// Example:
//
//	values, faults := fault.FilterMap(paths, func(p string, _ int) (Doc, error) {
//	    return loadDoc(p)
//	})
func FilterMap[I, R any](items []I, fn func(item I, index int) (R, error)) ([]R, []*Error) {
	values := make([]R, 0, len(items))
	var faults []*Error
	for i, item := range items {
		v, ferr := attemptItem(item, i, fn)
		switch {
		case ferr == nil:
			values = append(values, v)
		case errors.Is(ferr, Skip):
		default:
			faults = append(faults, ferr)
		}
	}
	return values, faults
}

// FilterMapConcurrent is the eventual variant of [FilterMap]: every item's
// operation runs in its own goroutine and the call waits for all of them —
// a single slow or failing item neither blocks a decision on its siblings
// nor cancels them. Output ordering follows input order regardless of
// completion order, and the partition rules are identical to FilterMap's.
func FilterMapConcurrent[I, R any](items []I, fn func(item I, index int) (R, error)) ([]R, []*Error) {
	type outcome struct {
		value R
		ferr  *Error
	}
	outcomes := make([]outcome, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item I) {
			defer wg.Done()
			v, ferr := attemptItem(item, i, fn)
			outcomes[i] = outcome{value: v, ferr: ferr}
		}(i, item)
	}
	wg.Wait()

	values := make([]R, 0, len(items))
	var faults []*Error
	for _, o := range outcomes {
		switch {
		case o.ferr == nil:
			values = append(values, o.value)
		case errors.Is(o.ferr, Skip):
		default:
			faults = append(faults, o.ferr)
		}
	}
	return values, faults
}

// attemptItem runs fn for one item under the same panic and error
// normalization as [Attempt].
func attemptItem[I, R any](item I, index int, fn func(I, int) (R, error)) (R, *Error) {
	return Attempt(func() (R, error) {
		return fn(item, index)
	})
}
