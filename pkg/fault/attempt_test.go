package fault

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttempt_Success(t *testing.T) {
	t.Parallel()
	v, ferr := Attempt(func() (int, error) {
		return 42, nil
	})

	assert.Nil(t, ferr)
	assert.Equal(t, 42, v)
}

func TestAttempt_ReturnedError(t *testing.T) {
	t.Parallel()

	t.Run("foreign error is promoted", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection refused")
		v, ferr := Attempt(func() (string, error) {
			return "partial", cause
		})

		require.NotNil(t, ferr)
		assert.Empty(t, v, "failure branch must carry the zero value")
		assert.True(t, errors.Is(ferr, cause))
		assert.Equal(t, "connection refused", ferr.Error())
	})

	t.Run("fault passes through unchanged", func(t *testing.T) {
		t.Parallel()
		orig := New("already converted")
		_, ferr := Attempt(func() (int, error) {
			return 0, orig
		})

		assert.Same(t, orig, ferr)
	})
}

func TestAttempt_Panic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		op        func() (int, error)
		wantChain string
	}{
		{
			name:      "string panic",
			op:        func() (int, error) { panic("string error") },
			wantChain: "string error",
		},
		{
			name:      "error panic",
			op:        func() (int, error) { panic(errors.New("boom")) },
			wantChain: "boom",
		},
		{
			name:      "typed error panic keeps its name",
			op:        func() (int, error) { panic(&quotaError{limit: 5}) },
			wantChain: "quotaError: limit 5 reached",
		},
		{
			name:      "nil panic",
			op:        func() (int, error) { panic(nil) },
			wantChain: "nil",
		},
		{
			name:      "arbitrary value panic",
			op:        func() (int, error) { panic(123) },
			wantChain: "123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, ferr := Attempt(tt.op)

			require.NotNil(t, ferr, "the panic must not escape Attempt")
			assert.Zero(t, v)
			assert.Equal(t, tt.wantChain, ferr.Chain())
		})
	}
}

func TestAttempt_PanicAfterPartialAssignment(t *testing.T) {
	t.Parallel()
	// The success value assigned before the panic must not leak into the
	// failure branch.
	v, ferr := Attempt(func() (int, error) {
		defer panic("late failure")
		return 7, nil
	})

	require.NotNil(t, ferr)
	assert.Zero(t, v)
}

func TestAttemptAsync(t *testing.T) {
	t.Parallel()

	t.Run("delivers the success branch", func(t *testing.T) {
		t.Parallel()
		res := <-AttemptAsync(func() (string, error) {
			return "done", nil
		})

		assert.True(t, res.Ok())
		v, ferr := res.Unpack()
		assert.Nil(t, ferr)
		assert.Equal(t, "done", v)
	})

	t.Run("delivers a recovered panic", func(t *testing.T) {
		t.Parallel()
		res := <-AttemptAsync(func() (string, error) {
			panic("async boom")
		})

		assert.False(t, res.Ok())
		require.NotNil(t, res.Err)
		assert.Equal(t, "async boom", res.Err.Chain())
	})

	t.Run("channel closes after one result", func(t *testing.T) {
		t.Parallel()
		ch := AttemptAsync(func() (int, error) { return 1, nil })

		<-ch
		_, open := <-ch
		assert.False(t, open, "channel must be closed after delivering the result")
	})

	t.Run("worker does not block on an abandoned result", func(t *testing.T) {
		t.Parallel()
		done := make(chan struct{})
		_ = AttemptAsync(func() (int, error) {
			defer close(done)
			return 1, nil
		})

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("operation should complete even when nobody receives the result")
		}
	})
}
