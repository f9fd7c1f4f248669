// Package text provides the built-in string cell implementations.
package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/cellflow/internal/handlers"
)

// Concat joins two strings.
func Concat(ctx context.Context, a, b string) (string, error) {
	return a + b, nil
}

// Upper uppercases a string.
func Upper(ctx context.Context, v string) (string, error) {
	return strings.ToUpper(v), nil
}

// Lower lowercases a string.
func Lower(ctx context.Context, v string) (string, error) {
	return strings.ToLower(v), nil
}

// Join renders every element of a list and joins them with a separator.
func Join(ctx context.Context, values []any, sep string) (string, error) {
	parts := make([]string, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			parts[i] = s
			continue
		}
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, sep), nil
}

// Register registers the string handlers with the registry.
func Register(h *handlers.Handlers) {
	h.Register("concat", handlers.Adapt([]string{"a", "b"}, Concat))
	h.Register("upper", handlers.Adapt([]string{"value"}, Upper))
	h.Register("lower", handlers.Adapt([]string{"value"}, Lower))
	h.Register("join", handlers.Adapt([]string{"values", "separator"}, Join))
}
