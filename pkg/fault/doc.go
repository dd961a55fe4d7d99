// Package fault provides the StricklySoft error-as-value model: a single
// contextual error type that carries an optional cause, an optional flat
// key/value context map, and an origin trace, plus a conversion layer that
// turns panics and returned errors into explicit values.
//
// # The Fault Type
//
// [Error] is the canonical error type. It forms a singly-linked cause chain
// via its Cause field, integrates with errors.Is / errors.As through
// Unwrap(), and renders the whole chain as a single readable line:
//
//	err := fault.New("handler failed", fault.New("query failed", sql.ErrNoRows))
//	fmt.Println(err) // handler failed -> query failed -> sql: no rows in result set
//
// Context is attached fluently at each propagation site and queried later
// for logging and diagnostics:
//
//	return fault.Wrap(err, "load profile").Ctx(map[string]any{
//	    "user_id": userID,
//	})
//
// [Error.Get] resolves a key with deepest-match-wins semantics; [Error.GetAll]
// returns every value for a key from the outermost error down to the root
// cause.
//
// # The Conversion Layer
//
// [Attempt] runs an operation and converts both failure channels — a
// returned error and a panic — into a *Error return value. Nothing escapes
// it; calling code checks the returned value instead of recovering:
//
//	cfg, ferr := fault.Attempt(func() (Config, error) {
//	    return parseConfig(raw) // may return an error or panic
//	})
//	if ferr != nil {
//	    log.Error("config rejected", "fault", ferr.Chain("startup"))
//	}
//
// [AttemptAsync] is the eventual variant; [FilterMap] and
// [FilterMapConcurrent] apply an operation across a batch with
// partial-failure semantics instead of failing fast.
//
// # Concurrency
//
// Error values are plain data. [Error.Ctx] mutates the receiver and is not
// synchronized; attaching context to the same error instance from multiple
// goroutines concurrently is a caller bug, not an enforced invariant.
package fault
