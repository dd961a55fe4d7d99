package classify

import (
	"context"
	"errors"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

// Context keys under which classifiers record what they learned.
const (
	// KeySystem names the subsystem that produced the error, e.g.
	// "postgres", "redis", "minio", "neo4j", "grpc", "jwt".
	KeySystem = "fault.system"

	// KeyKind holds the failure kind, one of the Kind* constants.
	KeyKind = "fault.kind"

	// KeyRetryable holds a bool reporting whether retrying the failed
	// operation is worthwhile.
	KeyRetryable = "fault.retryable"
)

// Failure kinds recorded under [KeyKind]. The set deliberately mirrors
// common transport taxonomies (HTTP, gRPC) without the fault type itself
// knowing about either.
const (
	KindNotFound    = "not_found"
	KindTimeout     = "timeout"
	KindCanceled    = "canceled"
	KindConflict    = "conflict"
	KindUnavailable = "unavailable"
	KindValidation  = "validation"
	KindAuth        = "auth"
	KindInternal    = "internal"
)

// Retryable reports the default retry stance for a kind: timeouts and
// unavailability are transient, everything else is not. Cancellation is
// deliberately not retryable — the caller abandoned the operation, and
// retrying an intentionally canceled request is wasteful.
func Retryable(kind string) bool {
	switch kind {
	case KindTimeout, KindUnavailable:
		return true
	default:
		return false
	}
}

// Kind returns the failure kind recorded anywhere in err's cause chain,
// deepest match first, or "" when err carries none. Re-wrapping a
// classified fault with fault.Wrap therefore does not lose the kind.
func Kind(err error) string {
	kind, _ := fault.Get[string](err, KeyKind)
	return kind
}

// IsRetryable reports whether err was classified as worth retrying.
// Unclassified errors are not retryable.
func IsRetryable(err error) bool {
	retryable, _ := fault.Get[bool](err, KeyRetryable)
	return retryable
}

// classified wraps err with message and stamps the standard classification
// keys. All classifiers funnel through here so that every classified fault
// carries the same shape.
func classified(err error, message, system, kind string, retryable bool) *fault.Error {
	f := fault.Wrap(err, message)
	if f == nil {
		return nil
	}
	return f.Ctx(map[string]any{
		KeySystem:    system,
		KeyKind:      kind,
		KeyRetryable: retryable,
	})
}

// contextKind maps context cancellation errors, which every driver can
// surface, to their kind. The second return is false when err is neither.
func contextKind(err error) (string, bool) {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout, true
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled, true
	}
	return "", false
}
