package fault

import (
	"errors"
)

// IsFault reports whether v is a non-nil *Error. It accepts any value, so
// it can discriminate the error branch of a result without a prior type
// assertion:
//
//	if fault.IsFault(res) {
//	    // res is a *fault.Error
//	}
//
// Unlike [AsFault] it does not unwrap: a generic error that merely wraps a
// *Error is not itself a fault value.
func IsFault(v any) bool {
	e, ok := v.(*Error)
	return ok && e != nil
}

// AsFault finds the nearest *Error in err's chain using errors.As.
// Returns the fault and true on success, nil and false otherwise.
//
// Example:
//
//	if f, ok := fault.AsFault(err); ok {
//	    logger.Error("operation failed", "fault_id", f.ID, "chain", f.Chain())
//	}
func AsFault(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}
