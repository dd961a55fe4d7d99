// Package faultotel records contextual faults on OpenTelemetry spans.
//
// A recorded fault contributes the standard exception event plus flat
// attributes for its correlation ID, formatted chain, and every context
// key attached anywhere in the cause chain, so trace backends can index
// and filter on the same data the logs carry.
package faultotel

import (
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

// Span attribute keys contributed by Record.
const (
	// AttrID carries the fault's correlation ID.
	AttrID = "fault.id"

	// AttrChain carries the formatted cause chain.
	AttrChain = "fault.chain"

	// AttrCtxPrefix prefixes one attribute per context key attached to
	// the fault chain, e.g. "fault.ctx.user_id".
	AttrCtxPrefix = "fault.ctx."
)

// Record records err on span: the standard exception event, an error span
// status whose description is the formatted chain, and — when err carries
// a fault — the fault attributes. A nil err or nil span is a no-op. The
// span is not ended; pair Record with the caller's own span lifecycle, or
// use [End].
func Record(span trace.Span, err error) {
	if span == nil || isNilFault(err) {
		return
	}

	span.RecordError(err)

	f, ok := fault.AsFault(err)
	if !ok {
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetStatus(codes.Error, f.Chain())
	span.SetAttributes(faultAttributes(f)...)
}

// End finishes span the way the platform's clients do: a nil err sets the
// OK status, a non-nil err is recorded via [Record]. The span is always
// ended.
//
// Example:
//
//	ctx, span := tracer.Start(ctx, "store.Load")
//	profile, ferr := s.load(ctx, id)
//	faultotel.End(span, ferr)
func End(span trace.Span, err error) {
	if span == nil {
		return
	}
	if isNilFault(err) {
		span.SetStatus(codes.Ok, "")
	} else {
		Record(span, err)
	}
	span.End()
}

// isNilFault reports whether err is nil or a typed-nil *fault.Error, which
// is what a fault-returning call path hands over on success.
func isNilFault(err error) bool {
	if err == nil {
		return true
	}
	f, ok := err.(*fault.Error)
	return ok && f == nil
}

// faultAttributes flattens a fault into span attributes. Context keys are
// emitted in sorted order so exporters see a deterministic attribute set;
// values are stringified, since the context map is open-typed and span
// attributes are not.
func faultAttributes(f *fault.Error) []attribute.KeyValue {
	flat := f.FlatContext()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(keys)+2)
	attrs = append(attrs,
		attribute.String(AttrID, f.ID),
		attribute.String(AttrChain, f.Chain()),
	)
	for _, k := range keys {
		attrs = append(attrs, attribute.String(AttrCtxPrefix+k, fmt.Sprint(flat[k])))
	}
	return attrs
}
