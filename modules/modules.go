// Package modules wires every built-in cell implementation pack into a
// handler registry.
package modules

import (
	"github.com/vk/cellflow/internal/handlers"
	"github.com/vk/cellflow/modules/arith"
	"github.com/vk/cellflow/modules/collect"
	"github.com/vk/cellflow/modules/fault"
	"github.com/vk/cellflow/modules/text"
)

// RegisterAll registers the definitive set of packs compiled into the
// cellflow binary.
func RegisterAll(h *handlers.Handlers) {
	arith.Register(h)
	collect.Register(h)
	fault.Register(h)
	text.Register(h)
}
