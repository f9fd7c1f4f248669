package hclshape

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/vk/cellflow/internal/ctyconv"
	"github.com/vk/cellflow/internal/op"
)

// formulaImpl compiles an HCL expression into a cell implementation. The
// expression's variable roots, in appearance order and de-duplicated, become
// the declared parameter names; they are captured here, once, and never
// re-derived. Evaluation diagnostics surface as implementation errors, which
// the evaluator records as failure values rather than aborting the pass.
func formulaImpl(expr hcl.Expression) *op.Impl {
	params := variableRoots(expr)

	return op.Func(params, func(ctx context.Context, args []any) (any, error) {
		vars := make(map[string]cty.Value, len(params))
		for i, param := range params {
			v, err := ctyconv.ToCty(args[i])
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", param, err)
			}
			vars[param] = v
		}

		val, diags := expr.Value(&hcl.EvalContext{
			Variables: vars,
			Functions: formulaFunctions,
		})
		if diags.HasErrors() {
			return nil, diags
		}
		return ctyconv.FromCty(val)
	})
}

// variableRoots extracts the root names referenced by an expression, keeping
// first-appearance order.
func variableRoots(expr hcl.Expression) []string {
	var roots []string
	seen := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		name := traversal.RootName()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		roots = append(roots, name)
	}
	return roots
}

// formulaFunctions is the function table available inside formula
// expressions, a small cut of the cty stdlib.
var formulaFunctions = map[string]function.Function{
	"abs":      stdlib.AbsoluteFunc,
	"ceil":     stdlib.CeilFunc,
	"floor":    stdlib.FloorFunc,
	"max":      stdlib.MaxFunc,
	"min":      stdlib.MinFunc,
	"concat":   stdlib.ConcatFunc,
	"length":   stdlib.LengthFunc,
	"reverse":  stdlib.ReverseListFunc,
	"coalesce": stdlib.CoalesceFunc,
	"format":   stdlib.FormatFunc,
	"join":     stdlib.JoinFunc,
	"split":    stdlib.SplitFunc,
	"upper":    stdlib.UpperFunc,
	"lower":    stdlib.LowerFunc,
	"strlen":   stdlib.StrlenFunc,
}
