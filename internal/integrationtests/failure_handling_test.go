package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/cellflow/internal/app"
	"github.com/vk/cellflow/internal/op"
	"github.com/vk/cellflow/internal/testutil"
)

func TestFailure_SuppressesOnlyTrueDependents(t *testing.T) {
	t.Parallel()

	// tax fails, so total (which needs tax) stays absent while tip (which
	// does not) still computes.
	result := testutil.RunApp(t, map[string]string{
		"main.hcl":   invoiceManifest,
		"inputs.hcl": invoiceBag,
	}, app.Config{
		BagPath:   "inputs.hcl",
		Overrides: map[string]string{"tax": "fail"},
	})

	require.NoError(t, result.Err, "a domain failure is data, not a run error")
	require.Contains(t, result.Output, "tax = !failure(forced failure)")
	require.Contains(t, result.Output, "tip = 15")
	require.NotContains(t, result.Output, "\ntotal =")
	require.NotContains(t, result.Bag, "total")
	require.True(t, op.IsFailure(result.Bag["tax"]))
}

func TestFailure_DivisionByZero(t *testing.T) {
	t.Parallel()

	result := testutil.RunApp(t, map[string]string{
		"main.hcl": `
operation "ratio" {
  cell "numerator" {}
  cell "denominator" {}
  cell "ratio" {
    impl   = "div"
    params = ["numerator", "denominator"]
  }
  cell "percent" {
    formula = ratio * 100
  }
}
`,
		"inputs.hcl": "numerator = 10\ndenominator = 0\n",
	}, app.Config{BagPath: "inputs.hcl"})

	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "ratio = !failure(division of 10 by zero)")
	require.NotContains(t, result.Bag, "percent")
}

func TestFailure_MissingPlaceholderIsFatal(t *testing.T) {
	t.Parallel()

	result := testutil.RunApp(t, map[string]string{
		"main.hcl": `
operation "incomplete" {
  cell "seed" {}
  cell "doubled" {
    formula = seed * 2
  }
}
`,
	}, app.Config{})

	require.Error(t, result.Err)
	require.ErrorIs(t, result.Err, op.ErrCellMissing)
	require.Contains(t, result.Err.Error(), `cell "seed" has no implementation and no value`)
}

func TestFailure_MissingAttributeNamesBothSides(t *testing.T) {
	t.Parallel()

	result := testutil.RunApp(t, map[string]string{
		"main.hcl": `
operation "needy" {
  cell "value" {
    formula = some_input + 1
  }
}
`,
	}, app.Config{})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `cell "value" is missing "some_input"`)
}

func TestFailure_CycleReportedBeforeEvaluation(t *testing.T) {
	t.Parallel()

	result := testutil.RunApp(t, map[string]string{
		"main.hcl": `
operation "cyclic" {
  cell "a" {
    formula = b + 1
  }
  cell "b" {
    formula = a + 1
  }
}
`,
	}, app.Config{})

	require.Error(t, result.Err)
	require.ErrorIs(t, result.Err, op.ErrCycle)
	require.Contains(t, result.Err.Error(), "dependency cycle")
}
