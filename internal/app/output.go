package app

import (
	"encoding/json"
	"fmt"

	"github.com/vk/cellflow/internal/bag"
	"github.com/vk/cellflow/internal/op"
)

// printBag renders the final bag to the output writer in the configured
// format. Text keeps the bag's own order; JSON is one object keyed by name.
func (a *App) printBag(b bag.Bag) error {
	if a.config.Output == "json" {
		obj := make(map[string]any, b.Len())
		for _, name := range b.Names() {
			v, _ := b.Get(name)
			if op.IsFailure(v) {
				obj[name] = map[string]any{"$failure": failureReason(v)}
				continue
			}
			obj[name] = v
		}
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(obj)
	}

	for _, name := range b.Names() {
		v, _ := b.Get(name)
		if op.IsFailure(v) {
			fmt.Fprintf(a.outW, "%s = !failure(%s)\n", name, failureReason(v))
			continue
		}
		fmt.Fprintf(a.outW, "%s = %v\n", name, v)
	}
	return nil
}

// failureReason extracts a printable reason from a failure value.
func failureReason(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", v)
}
