// Package bag provides the mutable value bag a call evaluates against: an
// insertion-ordered mapping from name to arbitrary value with explicit
// presence semantics. The bag is owned by the caller; the engine only
// mutates it in place during a call. It is the sole channel between cells
// and between repeated calls — no other state survives across bags.
package bag

import "sort"

// Bag is an ordered name/value mapping with presence checks and an explicit
// clear-to-absent operation. Implementations are not safe for concurrent use;
// callers serialize access, matching the engine's single-pass contract.
type Bag interface {
	// Get returns the value stored under name and whether it is present.
	// An explicitly stored nil is present.
	Get(name string) (any, bool)

	// Set stores a value under name. An existing name keeps its position in
	// iteration order; a new name is appended.
	Set(name string, v any)

	// Clear removes name entirely, returning it to the absent state.
	Clear(name string)

	// Names returns the present names in insertion order.
	Names() []string

	// Len returns the number of present names.
	Len() int
}

type ordered struct {
	order  []string
	values map[string]any
}

// New returns an empty in-memory bag.
func New() Bag {
	return &ordered{values: make(map[string]any)}
}

// FromMap seeds a bag from a plain map. Names are inserted in sorted order so
// the resulting iteration order is deterministic.
func FromMap(m map[string]any) Bag {
	b := New()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.Set(name, m[name])
	}
	return b
}

// Snapshot copies the current contents of a bag into a plain map.
func Snapshot(b Bag) map[string]any {
	out := make(map[string]any, b.Len())
	for _, name := range b.Names() {
		v, _ := b.Get(name)
		out[name] = v
	}
	return out
}

func (b *ordered) Get(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

func (b *ordered) Set(name string, v any) {
	if _, exists := b.values[name]; !exists {
		b.order = append(b.order, name)
	}
	b.values[name] = v
}

func (b *ordered) Clear(name string) {
	if _, exists := b.values[name]; !exists {
		return
	}
	delete(b.values, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *ordered) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

func (b *ordered) Len() int { return len(b.values) }
