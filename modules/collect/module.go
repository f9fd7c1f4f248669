// Package collect provides the built-in collection cell implementations.
package collect

import (
	"context"

	"github.com/vk/cellflow/internal/handlers"
	"github.com/vk/cellflow/modules/fault"
)

// Length counts the elements of a list, the entries of a map, or the bytes
// of a string.
func Length(ctx context.Context, v any) (any, error) {
	switch val := v.(type) {
	case []any:
		return len(val), nil
	case map[string]any:
		return len(val), nil
	case string:
		return len(val), nil
	default:
		return fault.Errorf("length of %T is not defined", v), nil
	}
}

// First returns the first element of a list, or a failure for an empty one.
func First(ctx context.Context, values []any) (any, error) {
	if len(values) == 0 {
		return fault.New("first of an empty list"), nil
	}
	return values[0], nil
}

// Last returns the last element of a list, or a failure for an empty one.
func Last(ctx context.Context, values []any) (any, error) {
	if len(values) == 0 {
		return fault.New("last of an empty list"), nil
	}
	return values[len(values)-1], nil
}

// Flatten concatenates nested lists one level deep; non-list elements pass
// through unchanged.
func Flatten(ctx context.Context, values []any) ([]any, error) {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if nested, ok := v.([]any); ok {
			out = append(out, nested...)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Register registers the collection handlers with the registry.
func Register(h *handlers.Handlers) {
	h.Register("length", handlers.Adapt([]string{"value"}, Length))
	h.Register("first", handlers.Adapt([]string{"values"}, First))
	h.Register("last", handlers.Adapt([]string{"values"}, Last))
	h.Register("flatten", handlers.Adapt([]string{"values"}, Flatten))
}
