package eval

import (
	"context"

	"github.com/vk/cellflow/internal/bag"
	"github.com/vk/cellflow/internal/ctxlog"
	"github.com/vk/cellflow/internal/op"
	"github.com/vk/cellflow/internal/plan"
)

// Evaluator runs passes against value bags, reusing resolved plans through a
// shared Planner. An Evaluator holds no per-bag state and may be shared by
// concurrent callers as long as no two of them evaluate the same bag.
type Evaluator struct {
	planner *plan.Planner
}

// New returns an Evaluator backed by the given Planner.
func New(planner *plan.Planner) *Evaluator {
	return &Evaluator{planner: planner}
}

// Call performs one evaluation pass of the instance over the bag, mutating it
// in place. Calling again on the same bag resumes incrementally: settled
// cells are skipped, failed or absent cells are retried, and anything
// downstream of a recomputed cell is recomputed as well.
func (e *Evaluator) Call(ctx context.Context, in *op.Instance, b bag.Bag) error {
	p, err := e.planner.PlanFor(in)
	if err != nil {
		return err
	}
	return run(ctx, p, in, b)
}

// Call is the one-shot form: it resolves a fresh plan for the instance and
// performs a single pass. Callers evaluating the same shape repeatedly should
// hold an Evaluator instead.
func Call(ctx context.Context, in *op.Instance, b bag.Bag) error {
	p, err := plan.Resolve(in.Definition(), in.Overrides())
	if err != nil {
		return err
	}
	return run(ctx, p, in, b)
}

// run is the single evaluation pass. Plan order guarantees every cell-valued
// source was processed before its dependents, so by the time a cell is
// examined each of its cell sources is either present in the bag or was
// suppressed (cleared and marked touched) earlier in this same pass.
func run(ctx context.Context, p *plan.Plan, in *op.Instance, b bag.Bag) error {
	logger := ctxlog.FromContext(ctx).With("operation", p.Operation())
	logger.Debug("Evaluation pass started.", "cells", p.Len())

	// Scratch for this pass only, indexed by plan position.
	touched := make([]bool, p.Len())

	for i, step := range p.Steps() {
		cur, present := b.Get(step.Cell)

		sourceTouched := false
		for _, src := range step.Sources {
			if !src.IsCell {
				// Raw bag attributes are caller-owned and static within a
				// pass; they never mark a dependent stale.
				continue
			}
			if pos, ok := p.Position(src.Name); ok && touched[pos] {
				sourceTouched = true
				break
			}
		}

		if present && !op.IsFailure(cur) && !sourceTouched {
			logger.Debug("Cell settled, skipping.", "cell", step.Cell)
			continue
		}

		impl := in.Effective(step.Cell)
		if impl == nil {
			return &op.CellMissingError{Cell: step.Cell}
		}

		args := make([]any, len(step.Sources))
		suppressed := false
		for j, src := range step.Sources {
			v, ok := b.Get(src.Name)
			if !ok {
				if !src.IsCell {
					return &op.CellMissingError{Cell: step.Cell, Missing: src.Name}
				}
				// An absent cell source was suppressed earlier this pass;
				// that suppression ripples here.
				suppressed = true
				continue
			}
			if op.IsFailure(v) {
				suppressed = true
			}
			args[j] = v
		}

		if suppressed {
			logger.Debug("Source unavailable, suppressing cell.", "cell", step.Cell)
			b.Clear(step.Cell)
			touched[i] = true
			continue
		}

		logger.Debug("Invoking cell.", "cell", step.Cell, "sources", len(args))
		out, err := impl.Fn(ctx, args)
		if err != nil {
			// An implementation error is domain data, not an engine error:
			// it is stored as a failure value so dependents are suppressed
			// and the cell is retried on the next call.
			logger.Debug("Cell implementation returned an error.", "cell", step.Cell, "error", err)
			out = &op.ImplError{Cell: step.Cell, Err: err}
		}
		b.Set(step.Cell, out)
		touched[i] = true
	}

	logger.Debug("Evaluation pass finished.")
	return nil
}
