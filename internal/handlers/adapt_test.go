package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdapt_TypedArguments(t *testing.T) {
	t.Parallel()

	impl := Adapt([]string{"a", "b"}, func(ctx context.Context, a, b float64) (float64, error) {
		return a + b, nil
	})
	require.Equal(t, []string{"a", "b"}, impl.Params)

	// Bag numbers arrive as int64 or float64 interchangeably.
	out, err := impl.Fn(context.Background(), []any{int64(2), 0.5})
	require.NoError(t, err)
	require.Equal(t, 2.5, out)
}

func TestAdapt_SliceConversion(t *testing.T) {
	t.Parallel()

	impl := Adapt([]string{"values"}, func(ctx context.Context, values []float64) (float64, error) {
		total := 0.0
		for _, v := range values {
			total += v
		}
		return total, nil
	})

	out, err := impl.Fn(context.Background(), []any{[]any{int64(50), int64(25), 25.0}})
	require.NoError(t, err)
	require.Equal(t, 100.0, out)
}

func TestAdapt_Variadic(t *testing.T) {
	t.Parallel()

	impl := Adapt([]string{"x", "y", "z"}, func(ctx context.Context, values ...float64) (float64, error) {
		product := 1.0
		for _, v := range values {
			product *= v
		}
		return product, nil
	})

	out, err := impl.Fn(context.Background(), []any{2.0, int64(3), 4.0})
	require.NoError(t, err)
	require.Equal(t, 24.0, out)
}

func TestAdapt_ConversionFailureIsImplError(t *testing.T) {
	t.Parallel()

	impl := Adapt([]string{"n"}, func(ctx context.Context, n float64) (float64, error) {
		return n, nil
	})

	_, err := impl.Fn(context.Background(), []any{"not a number"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `argument "n"`)
}

func TestAdapt_HandlerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	impl := Adapt(nil, func(ctx context.Context) (any, error) {
		return nil, boom
	})

	_, err := impl.Fn(context.Background(), nil)
	require.ErrorIs(t, err, boom)
}

func TestAdapt_RejectsBadShapes(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Adapt(nil, 42) })
	require.Panics(t, func() { Adapt(nil, func(a float64) (any, error) { return nil, nil }) })
	require.Panics(t, func() {
		Adapt([]string{"a"}, func(ctx context.Context, a, b float64) (any, error) { return nil, nil })
	})
	require.Panics(t, func() {
		Adapt(nil, func(ctx context.Context) any { return nil })
	})
}

func TestHandlers_RegisterAndLookup(t *testing.T) {
	t.Parallel()

	h := New()
	impl := Adapt(nil, func(ctx context.Context) (any, error) { return "ok", nil })
	h.Register("ok", impl)

	got, found := h.Lookup("ok")
	require.True(t, found)
	require.Same(t, impl, got)

	_, found = h.Lookup("missing")
	require.False(t, found)

	require.Equal(t, []string{"ok"}, h.Names())
	require.Panics(t, func() { h.Register("ok", impl) }, "duplicate registration must panic")
}
