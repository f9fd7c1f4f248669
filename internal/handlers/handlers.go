// Package handlers holds the registry mapping implementation names, as
// referenced by operation manifests and CLI overrides, to compiled cell
// implementations.
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/cellflow/internal/op"
)

// Handlers holds all the registered cell implementations.
type Handlers struct {
	all map[string]*op.Impl
}

// New creates and initializes an empty Handlers registry.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]*op.Impl),
	}
}

// Register registers a cell implementation under a name. Registering the same
// name twice is a programmer error and panics at startup.
func (h *Handlers) Register(name string, impl *op.Impl) {
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("cell handler with name '%s' already registered", name))
	}
	slog.Debug("Registering cell handler.", "name", name)
	h.all[name] = impl
}

// Lookup returns the implementation registered under name.
func (h *Handlers) Lookup(name string) (*op.Impl, bool) {
	impl, ok := h.all[name]
	return impl, ok
}

// Names returns the registered names in sorted order.
func (h *Handlers) Names() []string {
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered implementations.
func (h *Handlers) Len() int { return len(h.all) }
