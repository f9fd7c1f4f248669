package op

import "context"

// Fn is the calling convention for every cell implementation. Resolved source
// values arrive positionally, in the order of the implementation's declared
// parameter names. A non-nil error is recorded in the bag as a failure value
// for the cell; it does not abort the pass.
type Fn func(ctx context.Context, args []any) (any, error)

// Impl is one computation a cell can run: an explicit, ordered list of
// declared parameter names plus the function itself. Params is captured once
// at construction and never re-derived from the function at runtime.
type Impl struct {
	Params []string
	Fn     Fn
}

// Func builds an Impl from declared parameter names and a function.
func Func(params []string, fn Fn) *Impl {
	return &Impl{Params: params, Fn: fn}
}

// Const builds a zero-parameter Impl that always produces v.
func Const(v any) *Impl {
	return &Impl{
		Fn: func(ctx context.Context, args []any) (any, error) {
			return v, nil
		},
	}
}

// Cell is a single named unit of computation within a Definition.
type Cell struct {
	// Name is unique within the owning Definition.
	Name string

	// Impl is the default implementation. Nil marks a placeholder cell that
	// must be satisfied by an instance override or a pre-existing bag value.
	Impl *Impl

	// Rename maps a source cell name to the parameter alias used by this
	// cell's implementation. A declared parameter P resolves to source K when
	// some entry maps K to P; otherwise the parameter name is the source name.
	Rename map[string]string
}

// sourceFor resolves one declared parameter name to its source name through
// the cell's rename table.
func (c Cell) sourceFor(param string) string {
	for source, alias := range c.Rename {
		if alias == param {
			return source
		}
	}
	return param
}

// Sources returns the source names required by the given implementation when
// run as this cell, in declared parameter order.
func (c Cell) Sources(impl *Impl) []string {
	if impl == nil || len(impl.Params) == 0 {
		return nil
	}
	out := make([]string, len(impl.Params))
	for i, p := range impl.Params {
		out[i] = c.sourceFor(p)
	}
	return out
}
