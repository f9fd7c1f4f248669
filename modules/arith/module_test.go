package arith

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/cellflow/internal/op"
)

func TestSum(t *testing.T) {
	t.Parallel()

	total, err := Sum(context.Background(), []float64{50, 25, 25})
	require.NoError(t, err)
	require.Equal(t, 100.0, total)
}

func TestDiv_ByZeroIsFailureValue(t *testing.T) {
	t.Parallel()

	v, err := Div(context.Background(), 10, 0)
	require.NoError(t, err, "division by zero is data, not an error")
	require.True(t, op.IsFailure(v))

	v, err = Div(context.Background(), 10, 4)
	require.NoError(t, err)
	require.Equal(t, 2.5, v)
}
