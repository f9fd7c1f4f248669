package plan

import (
	"container/heap"
	"fmt"

	"github.com/vk/cellflow/internal/op"
)

// Resolve derives the dependency graph of an operation shape under a set of
// overrides and produces a deterministic linear evaluation order.
//
// For every declared cell the effective implementation is computed (override
// wins over default), its declared parameter names are rewritten through the
// cell's rename table into source names, and an edge source -> cell is added
// for each source that names another declared cell. The order is a
// topological sort over those edges; cells with no relative constraint keep
// their declaration order. A cycle is a configuration error reported before
// any cell executes.
//
// The result depends on the definition and on the parameter lists of the
// overridden implementations, never on any value bag.
func Resolve(def *op.Definition, overrides map[string]*op.Impl) (*Plan, error) {
	cells := def.Cells()
	n := len(cells)

	declIdx := make(map[string]int, n)
	for i, c := range cells {
		declIdx[c.Name] = i
	}
	for name := range overrides {
		if _, ok := declIdx[name]; !ok {
			return nil, fmt.Errorf("override for undeclared cell %q", name)
		}
	}

	steps := make([]Step, n)
	dependents := make([][]int, n)
	indeg := make([]int, n)

	for i, c := range cells {
		eff := effective(c, overrides)
		names := c.Sources(eff)

		sources := make([]Source, len(names))
		linked := make(map[int]struct{}, len(names))
		for j, name := range names {
			di, isCell := declIdx[name]
			sources[j] = Source{Name: name, IsCell: isCell}
			if !isCell {
				continue
			}
			if di == i {
				return nil, &op.CycleError{Path: []string{c.Name, c.Name}}
			}
			if _, dup := linked[di]; dup {
				continue
			}
			linked[di] = struct{}{}
			dependents[di] = append(dependents[di], i)
			indeg[i]++
		}
		steps[i] = Step{Cell: c.Name, Sources: sources, HasImpl: eff != nil}
	}

	order := topoOrder(dependents, indeg)
	if len(order) != n {
		witness := findCycle(cells, steps, declIdx)
		return nil, &op.CycleError{Path: witness}
	}

	p := &Plan{
		operation: def.Name(),
		steps:     make([]Step, 0, n),
		pos:       make(map[string]int, n),
	}
	for _, di := range order {
		p.pos[steps[di].Cell] = len(p.steps)
		p.steps = append(p.steps, steps[di])
	}
	return p, nil
}

func effective(c op.Cell, overrides map[string]*op.Impl) *op.Impl {
	if impl, ok := overrides[c.Name]; ok && impl != nil {
		return impl
	}
	return c.Impl
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topoOrder runs Kahn's algorithm with a min-heap keyed by declaration index,
// so cells with no relative constraint come out in declaration order. The
// returned order is shorter than the node count exactly when a cycle exists.
func topoOrder(dependents [][]int, indeg []int) []int {
	remaining := make([]int, len(indeg))
	copy(remaining, indeg)

	ready := &intMinHeap{}
	heap.Init(ready)
	for i := range remaining {
		if remaining[i] == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(remaining))
	for ready.Len() > 0 {
		u := heap.Pop(ready).(int)
		out = append(out, u)
		for _, v := range dependents[u] {
			remaining[v]--
			if remaining[v] == 0 {
				heap.Push(ready, v)
			}
		}
	}
	return out
}

// findCycle extracts one deterministic cycle witness by walking cell-valued
// sources depth-first in declaration order. It returns the path closed on its
// first node, e.g. [a b a].
func findCycle(cells []op.Cell, steps []Step, declIdx map[string]int) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make([]int, len(cells))
	parent := make([]int, len(cells))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int
	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, src := range steps[u].Sources {
			if !src.IsCell {
				continue
			}
			v := declIdx[src.Name]
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// Back-edge u -> v closes a cycle. Walk parents back to v.
				cycle = append(cycle, v)
				for cur := u; cur != -1 && cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := range cells {
		if color[i] == white && dfs(i) {
			break
		}
	}
	if len(cycle) == 0 {
		return nil
	}

	// The walk collected the path backwards; reverse it so the witness reads
	// in dependency direction.
	out := make([]string, 0, len(cycle))
	for i := len(cycle) - 1; i >= 0; i-- {
		out = append(out, cells[cycle[i]].Name)
	}
	return out
}
