// Package arith provides the built-in numeric cell implementations.
package arith

import (
	"context"
	"math"

	"github.com/vk/cellflow/internal/handlers"
	"github.com/vk/cellflow/modules/fault"
)

// Sum adds up a list of numbers.
func Sum(ctx context.Context, values []float64) (float64, error) {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total, nil
}

// Product multiplies its arguments.
func Product(ctx context.Context, values ...float64) (float64, error) {
	product := 1.0
	for _, v := range values {
		product *= v
	}
	return product, nil
}

// Add returns a + b.
func Add(ctx context.Context, a, b float64) (float64, error) {
	return a + b, nil
}

// Sub returns a - b.
func Sub(ctx context.Context, a, b float64) (float64, error) {
	return a - b, nil
}

// Div returns a / b, or a failure value when b is zero. Division by zero is
// domain data, not a configuration error: dependents are suppressed and the
// cell is retried on the next call.
func Div(ctx context.Context, a, b float64) (any, error) {
	if b == 0 {
		return fault.Errorf("division of %v by zero", a), nil
	}
	return a / b, nil
}

// Neg returns -v.
func Neg(ctx context.Context, v float64) (float64, error) {
	return -v, nil
}

// Round rounds to the nearest integer, halves away from zero.
func Round(ctx context.Context, v float64) (float64, error) {
	return math.Round(v), nil
}

// Register registers the arithmetic handlers with the registry.
func Register(h *handlers.Handlers) {
	h.Register("sum", handlers.Adapt([]string{"values"}, Sum))
	h.Register("product", handlers.Adapt([]string{"a", "b"}, Product))
	h.Register("add", handlers.Adapt([]string{"a", "b"}, Add))
	h.Register("sub", handlers.Adapt([]string{"a", "b"}, Sub))
	h.Register("div", handlers.Adapt([]string{"a", "b"}, Div))
	h.Register("neg", handlers.Adapt([]string{"value"}, Neg))
	h.Register("round", handlers.Adapt([]string{"value"}, Round))
}
