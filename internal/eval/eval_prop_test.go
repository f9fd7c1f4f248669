package eval

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vk/cellflow/internal/bag"
	"github.com/vk/cellflow/internal/op"
)

// TestCall_SecondPassIsQuiescent checks the memoization invariant over
// arbitrary acyclic shapes: after one successful pass, a second pass on the
// untouched bag invokes nothing and changes nothing.
func TestCall_SecondPassIsQuiescent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(rt, "cells")

		name := func(i int) string { return fmt.Sprintf("c%d", i) }

		counts := make([]int, n)
		builder := op.NewDefinition("random")
		for i := 0; i < n; i++ {
			var sources []string
			for j := 0; j < i; j++ {
				if rapid.Bool().Draw(rt, fmt.Sprintf("edge_%d_%d", j, i)) {
					sources = append(sources, name(j))
				}
			}
			idx := i
			impl := op.Func(sources, func(ctx context.Context, args []any) (any, error) {
				counts[idx]++
				total := 1.0
				for _, a := range args {
					total += a.(float64)
				}
				return total, nil
			})
			require.NoError(rt, builder.Declare(name(idx), impl, nil))
		}
		def, err := builder.Seal()
		require.NoError(rt, err)

		in := def.Instance(nil)
		b := bag.New()

		require.NoError(rt, Call(context.Background(), in, b))
		first := bag.Snapshot(b)
		for i, c := range counts {
			require.Equal(rt, 1, c, "cell %s must run exactly once on the first pass", name(i))
		}

		require.NoError(rt, Call(context.Background(), in, b))
		require.Equal(rt, first, bag.Snapshot(b))
		for i, c := range counts {
			require.Equal(rt, 1, c, "cell %s must not run again on a quiescent bag", name(i))
		}
	})
}
