package fault

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Chain(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		err     *Error
		prepend []string
		want    string
	}{
		{
			name: "single message",
			err:  New("m"),
			want: "m",
		},
		{
			name: "fault cause",
			err:  New("m", New("c")),
			want: "m -> c",
		},
		{
			name: "three level chain",
			err:  New("A", New("B", New("C"))),
			want: "A -> B -> C",
		},
		{
			name: "generic cause renders its own text",
			err:  New("A", errors.New("B")),
			want: "A -> B",
		},
		{
			name: "prepend message leads the chain",
			err:  New("m", New("c")),
			prepend: []string{
				"sync aborted",
			},
			want: "sync aborted -> m -> c",
		},
		{
			name: "blank own message is filtered",
			err:  New("", New("c")),
			want: "c",
		},
		{
			name: "whitespace only segments are filtered",
			err:  New("   ", New("c")),
			want: "c",
		},
		{
			name: "all blank collapses to fallback",
			err:  New("", errors.New("")),
			want: "Unknown error",
		},
		{
			name: "blank prepend over blank chain still falls back",
			err:  New(""),
			prepend: []string{
				" ",
			},
			want: "Unknown error",
		},
		{
			name: "named cause gets a prefix",
			err:  New("m", Named("CustomError", "X")),
			want: "m -> CustomError: X",
		},
		{
			name: "default named links render bare",
			err:  New("m", New("c")),
			want: "m -> c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Chain(tt.prepend...))
		})
	}
}

func TestError_Chain_GenericIntermediateTerminatesFormatting(t *testing.T) {
	t.Parallel()
	// A generic wrapper's Error() text already includes what it wraps;
	// the chain walk must not render the deeper links a second time.
	deep := errors.New("deep")
	mid := fmt.Errorf("mid: %w", deep)
	top := New("top", mid)

	assert.Equal(t, "top -> mid: deep", top.Chain())
}

func TestError_Chain_CycleTerminates(t *testing.T) {
	t.Parallel()
	a := New("a")
	b := New("b", a)
	a.Cause = b

	got := a.Chain()
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, strings.Count(got, "a"), maxChainDepth)
}

// sharedChain builds top -> middle -> deep, each level setting the key
// "shared" to its own label.
func sharedChain() *Error {
	deep := New("deep failure").Ctx(map[string]any{"shared": "deep", "only_deep": true})
	mid := New("mid failure", deep).Ctx(map[string]any{"shared": "middle"})
	return New("top failure", mid).Ctx(map[string]any{"shared": "top", "only_top": 1})
}

func TestError_Get(t *testing.T) {
	t.Parallel()

	t.Run("deepest match wins", func(t *testing.T) {
		t.Parallel()
		v, ok := sharedChain().Get("shared")
		require.True(t, ok)
		assert.Equal(t, "deep", v)
	})

	t.Run("falls back to shallower levels", func(t *testing.T) {
		t.Parallel()
		v, ok := sharedChain().Get("only_top")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("absent key", func(t *testing.T) {
		t.Parallel()
		_, ok := sharedChain().Get("missing")
		assert.False(t, ok)
	})

	t.Run("reaches a fault behind a generic wrapper", func(t *testing.T) {
		t.Parallel()
		deep := New("deep").Ctx(map[string]any{"k": "v"})
		top := New("top", fmt.Errorf("plumbing: %w", deep))

		v, ok := top.Get("k")
		require.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("nil receiver", func(t *testing.T) {
		t.Parallel()
		var e *Error
		_, ok := e.Get("k")
		assert.False(t, ok)
	})
}

func TestError_GetAll(t *testing.T) {
	t.Parallel()

	t.Run("shallow to deep order", func(t *testing.T) {
		t.Parallel()
		got := sharedChain().GetAll("shared")
		assert.Equal(t, []any{"top", "middle", "deep"}, got)
	})

	t.Run("gaps are skipped without breaking the scan", func(t *testing.T) {
		t.Parallel()
		deep := New("deep").Ctx(map[string]any{"shared": "deep"})
		mid := New("mid", deep) // no context at this level
		top := New("top", mid).Ctx(map[string]any{"shared": "top"})

		assert.Equal(t, []any{"top", "deep"}, top.GetAll("shared"))
	})

	t.Run("generic intermediate links are stepped over", func(t *testing.T) {
		t.Parallel()
		deep := New("deep").Ctx(map[string]any{"shared": "deep"})
		top := New("top", fmt.Errorf("plumbing: %w", deep)).Ctx(map[string]any{"shared": "top"})

		assert.Equal(t, []any{"top", "deep"}, top.GetAll("shared"))
	})

	t.Run("absent key yields nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, sharedChain().GetAll("missing"))
	})
}

func TestError_FlatContext(t *testing.T) {
	t.Parallel()
	got := sharedChain().FlatContext()

	assert.Equal(t, map[string]any{
		"shared":    "deep",
		"only_deep": true,
		"only_top":  1,
	}, got)

	// The merged view is a copy; mutating it must not touch the chain.
	got["shared"] = "mutated"
	v, _ := sharedChain().Get("shared")
	assert.Equal(t, "deep", v)
}

func TestGet_Generic(t *testing.T) {
	t.Parallel()

	t.Run("typed hit", func(t *testing.T) {
		t.Parallel()
		v, ok := Get[string](sharedChain(), "shared")
		require.True(t, ok)
		assert.Equal(t, "deep", v)
	})

	t.Run("type mismatch misses", func(t *testing.T) {
		t.Parallel()
		_, ok := Get[int](sharedChain(), "shared")
		assert.False(t, ok)
	})

	t.Run("foreign error misses", func(t *testing.T) {
		t.Parallel()
		_, ok := Get[string](errors.New("x"), "shared")
		assert.False(t, ok)
	})

	t.Run("locates fault through generic wrappers", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("outer: %w", sharedChain())
		v, ok := Get[string](wrapped, "shared")
		require.True(t, ok)
		assert.Equal(t, "deep", v)
	})
}

func TestGetAll_Generic(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"top", "middle", "deep"},
		GetAll[string](sharedChain(), "shared"))
	assert.Nil(t, GetAll[string](errors.New("x"), "shared"))
}

func TestError_RootStack(t *testing.T) {
	t.Parallel()

	t.Run("returns the deepest captured trace", func(t *testing.T) {
		t.Parallel()
		deep := New("deep")
		top := New("top", New("mid", deep))

		assert.Equal(t, deep.Stack, top.RootStack())
		assert.NotContains(t, top.RootStack(), "fault.newError",
			"construction frames are excluded at capture time")
	})

	t.Run("skips blank traces in deeper links", func(t *testing.T) {
		t.Parallel()
		deep := &Error{Message: "deep"} // literal construction, no stack
		top := New("top", deep)

		assert.Equal(t, top.Stack, top.RootStack())
	})

	t.Run("falls back when nothing captured a trace", func(t *testing.T) {
		t.Parallel()
		e := &Error{Message: "bare", Cause: &Error{Message: "deeper"}}
		assert.Equal(t, "<no stack>", e.RootStack())
	})
}
