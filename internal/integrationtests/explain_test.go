package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/cellflow/internal/app"
	"github.com/vk/cellflow/internal/testutil"
)

func TestExplain_PrintsOrderWithoutEvaluating(t *testing.T) {
	t.Parallel()

	// No bag is supplied, so evaluation would fail on the placeholders;
	// explain must succeed anyway because nothing runs.
	result := testutil.RunApp(t, map[string]string{
		"main.hcl": invoiceManifest,
	}, app.Config{Explain: true})

	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "invoice")
	require.Contains(t, result.Output, "subtotal")
	require.Contains(t, result.Output, `digraph "invoice"`)
	require.Contains(t, result.Output, `"subtotal" -> "tax";`)
	require.Nil(t, result.Bag, "explain must not evaluate")
}

func TestOperationSelection(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.hcl": `
operation "first_shape" {
  cell "value" { default = 1 }
}

operation "second_shape" {
  cell "value" { default = 2 }
}
`,
	}

	result := testutil.RunApp(t, files, app.Config{Operation: "second_shape"})
	require.NoError(t, result.Err)
	require.EqualValues(t, 2, result.Bag["value"])

	// Without a selection the ambiguity is an error naming the candidates.
	result = testutil.RunApp(t, files, app.Config{})
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "first_shape")
	require.Contains(t, result.Err.Error(), "second_shape")

	result = testutil.RunApp(t, files, app.Config{Operation: "no_such_shape"})
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `operation "no_such_shape" not found`)
}

func TestManifestDirectoryLoading(t *testing.T) {
	t.Parallel()

	// Operations may be split across files in a directory; the directory
	// itself is the op path.
	result := testutil.RunApp(t, map[string]string{
		"shapes/alpha.hcl": `
operation "alpha" {
  cell "value" { default = "a" }
}
`,
		"shapes/beta.hcl": `
operation "beta" {
  cell "value" { default = "b" }
}
`,
	}, app.Config{OpPath: "shapes", Operation: "beta"})

	require.NoError(t, result.Err)
	require.Equal(t, "b", result.Bag["value"])
}
