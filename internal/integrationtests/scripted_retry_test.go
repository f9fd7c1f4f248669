package integrationtests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/cellflow/internal/bag"
	"github.com/vk/cellflow/internal/eval"
	"github.com/vk/cellflow/internal/op"
	"github.com/vk/cellflow/internal/plan"
	"github.com/vk/cellflow/internal/testutil"
	"github.com/vk/cellflow/modules/fault"
)

// Scripted implementations drive multi-pass scenarios: a cell that fails on
// the first pass and succeeds on the second must ripple its recovery to
// dependents, without disturbing settled neighbors.
func TestScripted_FailureThenRecovery(t *testing.T) {
	t.Parallel()

	builder := op.NewDefinition("flaky_invoice")
	require.NoError(t, builder.DeclareMany("subtotal_rate"))
	require.NoError(t, builder.Declare("subtotal", op.Const(100.0), nil))
	require.NoError(t, builder.Declare("tax",
		testutil.Scripted([]string{"subtotal"}, fault.New("tax service down"), 5.0), nil))
	require.NoError(t, builder.Declare("tip", op.Const(15.0), nil))
	require.NoError(t, builder.Declare("total", op.Func([]string{"subtotal", "tax", "tip"},
		func(ctx context.Context, args []any) (any, error) {
			return args[0].(float64) + args[1].(float64) + args[2].(float64), nil
		}), nil))
	def, err := builder.Seal()
	require.NoError(t, err)

	in := def.Instance(nil)
	b := bag.New()
	b.Set("subtotal_rate", 1.0)
	ev := eval.New(plan.NewPlanner())

	// First pass: tax fails, total is suppressed, the rest settles.
	require.NoError(t, ev.Call(context.Background(), in, b))
	require.True(t, op.IsFailure(get(t, b, "tax")))
	_, present := b.Get("total")
	require.False(t, present)
	require.Equal(t, 15.0, get(t, b, "tip"))

	// Second pass: the failure is retried, succeeds, and total appears.
	require.NoError(t, ev.Call(context.Background(), in, b))
	require.Equal(t, 5.0, get(t, b, "tax"))
	require.Equal(t, 120.0, get(t, b, "total"))

	// Third pass: quiescent.
	require.NoError(t, ev.Call(context.Background(), in, b))
	require.Equal(t, 120.0, get(t, b, "total"))
}

// An error entry in the script surfaces as an implementation error, which the
// engine records as a failure value for the cell.
func TestScripted_ErrorEntriesBecomeImplErrors(t *testing.T) {
	t.Parallel()

	builder := op.NewDefinition("erroring")
	require.NoError(t, builder.Declare("value",
		testutil.Scripted(nil, assertableError{}, "recovered"), nil))
	def, err := builder.Seal()
	require.NoError(t, err)

	in := def.Instance(nil)
	b := bag.New()

	require.NoError(t, eval.Call(context.Background(), in, b))
	v := get(t, b, "value")
	require.True(t, op.IsFailure(v))
	var implErr *op.ImplError
	require.ErrorAs(t, v.(error), &implErr)
	require.Equal(t, "value", implErr.Cell)

	require.NoError(t, eval.Call(context.Background(), in, b))
	require.Equal(t, "recovered", get(t, b, "value"))
}

type assertableError struct{}

func (assertableError) Error() string { return "scripted explosion" }

func get(t *testing.T, b bag.Bag, name string) any {
	t.Helper()
	v, ok := b.Get(name)
	require.True(t, ok, "cell %q should be present", name)
	return v
}
