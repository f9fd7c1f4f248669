// Package fault provides the concrete failure payload used by the built-in
// modules and the CLI. The engine itself only ever sees the failure-marker
// capability; any domain type carrying it works just as well.
package fault

import (
	"context"
	"fmt"

	"github.com/vk/cellflow/internal/handlers"
)

// Fault is a failure value: ordinary bag data that suppresses dependent
// cells without raising an engine error.
type Fault struct {
	Reason string
	cause  error
}

// New creates a failure value with the given reason.
func New(reason string) *Fault {
	return &Fault{Reason: reason}
}

// Errorf creates a failure value with a formatted reason.
func Errorf(format string, args ...any) *Fault {
	return &Fault{Reason: fmt.Sprintf(format, args...)}
}

// FromErr wraps a Go error as a failure value.
func FromErr(err error) *Fault {
	return &Fault{Reason: err.Error(), cause: err}
}

// IsFailure marks Fault as a failure value for the evaluator.
func (f *Fault) IsFailure() bool { return true }

func (f *Fault) Error() string { return f.Reason }

// Unwrap exposes the wrapped error, if any.
func (f *Fault) Unwrap() error { return f.cause }

// Fail always produces a failure value. It exists for demos and tests that
// need a cell to fail on demand.
func Fail(ctx context.Context) (any, error) {
	return New("forced failure"), nil
}

// Register registers the fault handlers with the registry.
func Register(h *handlers.Handlers) {
	h.Register("fail", handlers.Adapt(nil, Fail))
}
