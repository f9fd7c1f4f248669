package plan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vk/cellflow/internal/op"
)

// TestResolve_RandomDAGs checks the two ordering invariants over arbitrary
// acyclic shapes: every cell source precedes its dependent, and cells with no
// path between them keep declaration order.
func TestResolve_RandomDAGs(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(rt, "cells")

		name := func(i int) string { return fmt.Sprintf("c%d", i) }

		// Only edges from earlier-declared cells, so the shape is acyclic by
		// construction.
		deps := make([][]int, n)
		builder := op.NewDefinition("random")
		for i := 0; i < n; i++ {
			var sources []string
			for j := 0; j < i; j++ {
				if rapid.Bool().Draw(rt, fmt.Sprintf("edge_%d_%d", j, i)) {
					deps[i] = append(deps[i], j)
					sources = append(sources, name(j))
				}
			}
			require.NoError(rt, builder.Declare(name(i), noop(sources...), nil))
		}
		def, err := builder.Seal()
		require.NoError(rt, err)

		p, err := Resolve(def, nil)
		require.NoError(rt, err)
		require.Equal(rt, n, p.Len())

		pos := make(map[string]int, n)
		for i, cell := range p.Order() {
			pos[cell] = i
		}

		reachable := transitiveClosure(n, deps)
		for i := 0; i < n; i++ {
			for _, j := range deps[i] {
				require.Less(rt, pos[name(j)], pos[name(i)],
					"source %s must precede %s", name(j), name(i))
			}
			for j := 0; j < i; j++ {
				if !reachable[i][j] && !reachable[j][i] {
					require.Less(rt, pos[name(j)], pos[name(i)],
						"unrelated cells %s and %s must keep declaration order", name(j), name(i))
				}
			}
		}
	})
}

// transitiveClosure marks reachable[i][j] when j is an ancestor of i.
func transitiveClosure(n int, deps [][]int) [][]bool {
	reachable := make([][]bool, n)
	for i := range reachable {
		reachable[i] = make([]bool, n)
	}
	// Dependencies only point at lower indices, so one ascending sweep
	// settles the closure.
	for i := 0; i < n; i++ {
		for _, j := range deps[i] {
			reachable[i][j] = true
			for k := 0; k < n; k++ {
				if reachable[j][k] {
					reachable[i][k] = true
				}
			}
		}
	}
	return reachable
}
