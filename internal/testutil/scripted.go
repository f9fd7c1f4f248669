package testutil

import (
	"context"
	"sync"

	"github.com/vk/cellflow/internal/op"
)

// Scripted builds a cell implementation that plays back a queued sequence of
// results across successive invocations: the first call returns the first
// entry, and so on, with the final entry repeating once the queue runs out.
// An entry that is a Go error is returned as the call's error; anything else
// (failure values included) is returned as the produced value.
func Scripted(params []string, results ...any) *op.Impl {
	if len(results) == 0 {
		panic("testutil.Scripted: at least one result is required")
	}

	var mu sync.Mutex
	call := 0

	return op.Func(params, func(ctx context.Context, args []any) (any, error) {
		mu.Lock()
		i := call
		if i >= len(results) {
			i = len(results) - 1
		}
		call++
		mu.Unlock()

		if err, ok := results[i].(error); ok {
			if _, isFailure := results[i].(op.Failure); !isFailure {
				return nil, err
			}
		}
		return results[i], nil
	})
}
