// Package testutil provides shared test helpers for the fault library.
//
// All helpers accept [testing.TB] for compatibility with both tests and
// benchmarks. Functions that halt the test on failure use [require] from
// testify; functions that record failures without stopping use [assert].
//
// Every helper calls t.Helper() so that test failure messages report the
// caller's file and line number rather than this package's.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-fault/pkg/classify"
	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

// RequireNoError halts the test immediately if err is non-nil.
// Use this for preconditions whose failure makes continuing meaningless.
func RequireNoError(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// RequireError halts the test immediately if err is nil.
// Use this when an error is expected and subsequent assertions depend on it.
func RequireError(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
}

// RequireFault halts the test if err is nil or does not carry a
// *fault.Error anywhere in its chain, and returns the fault for further
// assertions. This is the primary helper for validating fault-producing
// paths.
//
// Example:
//
//	f := testutil.RequireFault(t, classify.Postgres(err, "query failed"))
//	assert.Equal(t, classify.KindConflict, classify.Kind(f))
func RequireFault(t testing.TB, err error, msgAndArgs ...any) *fault.Error {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	f, ok := fault.AsFault(err)
	require.True(t, ok, "expected *fault.Error, got %T: %v", err, err)
	return f
}

// RequireChain halts the test if err does not carry a fault or if the
// fault's formatted chain differs from want.
func RequireChain(t testing.TB, err error, want string) {
	t.Helper()
	f := RequireFault(t, err)
	require.Equal(t, want, f.Chain(),
		"formatted chain mismatch (fault id %s)", f.ID)
}

// RequireKind halts the test if err does not carry the expected failure
// kind. This is the classify-layer counterpart of RequireChain.
func RequireKind(t testing.TB, err error, kind string) {
	t.Helper()
	RequireFault(t, err)
	require.Equal(t, kind, classify.Kind(err),
		"fault kind mismatch: got %q, want %q (chain: %s)",
		classify.Kind(err), kind, err)
}

// AssertKind records a test failure (without halting) if err does not
// carry the expected failure kind. Use this in table-driven tests where
// you want to check all rows.
func AssertKind(t testing.TB, err error, kind string) bool {
	t.Helper()
	f, ok := fault.AsFault(err)
	if !assert.True(t, ok, "expected *fault.Error, got %T: %v", err, err) {
		return false
	}
	return assert.Equal(t, kind, classify.Kind(f),
		"fault kind mismatch: got %q, want %q (chain: %s)",
		classify.Kind(f), kind, f.Chain())
}

// RequireCtxValue halts the test if the chain does not carry key, or
// carries it with a value different from want. Lookup uses the
// deepest-match-wins rule of [fault.Error.Get].
func RequireCtxValue(t testing.TB, err error, key string, want any) {
	t.Helper()
	f := RequireFault(t, err)
	v, ok := f.Get(key)
	require.True(t, ok, "context key %q absent from chain (chain: %s)", key, f.Chain())
	require.Equal(t, want, v, "context value mismatch for key %q", key)
}

// AssertRetryable records a test failure if err's classified retry stance
// differs from want.
func AssertRetryable(t testing.TB, err error, want bool) bool {
	t.Helper()
	return assert.Equal(t, want, classify.IsRetryable(err),
		"retry stance mismatch for: %v", err)
}
