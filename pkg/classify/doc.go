// Package classify converts driver and transport errors into contextual
// faults. Each classifier inspects an error the way the corresponding
// client library surfaces failures — sentinel errors, typed error structs,
// status codes — and returns a [fault.Error] whose context map records what
// was learned, under the documented keys:
//
//	fault.system    the subsystem that produced the error ("postgres", "redis", ...)
//	fault.kind      the failure kind ("not_found", "timeout", "conflict", ...)
//	fault.retryable whether a retry is worthwhile (bool)
//
// plus driver-specific keys such as "pg.sqlstate" or "s3.bucket". The fault
// type itself carries no kind taxonomy; everything a classifier knows is
// expressed as context, so callers branch with [Kind] and [IsRetryable]
// (which resolve deepest-match-wins through the cause chain) rather than on
// a code field.
//
// Classifiers are nil-in/nil-out and safe to apply unconditionally on a
// return path:
//
//	rows, err := pool.Query(ctx, sql)
//	if err != nil {
//	    return classify.Postgres(err, "fetch users failed")
//	}
package classify
