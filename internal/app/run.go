package app

import (
	"context"
	"fmt"

	"github.com/vk/cellflow/internal/bag"
	"github.com/vk/cellflow/internal/ctxlog"
	"github.com/vk/cellflow/internal/eval"
	"github.com/vk/cellflow/internal/hclshape"
	"github.com/vk/cellflow/internal/op"
	"github.com/vk/cellflow/internal/plan"
)

// Run executes the main application logic based on the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	loader := hclshape.NewLoader(a.handlers)
	defs, err := loader.Load(ctx, a.config.OpPath)
	if err != nil {
		return fmt.Errorf("failed to load operation manifests: %w", err)
	}
	a.logger.Debug("Operation manifests loaded.", "operations", len(defs))

	def, err := selectDefinition(defs, a.config.Operation)
	if err != nil {
		return err
	}

	overrides, err := a.resolveOverrides()
	if err != nil {
		return err
	}
	instance := def.Instance(overrides)

	if a.config.Explain {
		p, err := plan.Resolve(def, overrides)
		if err != nil {
			return fmt.Errorf("failed to resolve evaluation order: %w", err)
		}
		fmt.Fprint(a.outW, p.Tree())
		fmt.Fprint(a.outW, p.Dot())
		return nil
	}

	b := bag.New()
	if a.config.BagPath != "" {
		b, err = hclshape.LoadBag(ctx, a.config.BagPath)
		if err != nil {
			return fmt.Errorf("failed to load bag file: %w", err)
		}
	}

	evaluator := eval.New(plan.NewPlanner())
	for i := 0; i < a.config.Calls; i++ {
		a.logger.Info("Starting evaluation pass.", "operation", def.Name(), "pass", i+1)
		if err := evaluator.Call(ctx, instance, b); err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
		a.logger.Info("Evaluation pass finished.", "pass", i+1, "values", b.Len())
	}

	a.finalBag = b
	return a.printBag(b)
}

// selectDefinition picks the definition to evaluate: the named one, or the
// only one when the manifest declares a single operation.
func selectDefinition(defs []*op.Definition, name string) (*op.Definition, error) {
	if name == "" {
		if len(defs) == 1 {
			return defs[0], nil
		}
		names := make([]string, len(defs))
		for i, def := range defs {
			names[i] = def.Name()
		}
		return nil, fmt.Errorf("manifest declares %d operations %v: select one with -operation", len(defs), names)
	}
	for _, def := range defs {
		if def.Name() == name {
			return def, nil
		}
	}
	return nil, fmt.Errorf("operation %q not found in manifest", name)
}

// resolveOverrides maps the CLI's cell=handler pairs into implementations.
func (a *App) resolveOverrides() (map[string]*op.Impl, error) {
	if len(a.config.Overrides) == 0 {
		return nil, nil
	}
	out := make(map[string]*op.Impl, len(a.config.Overrides))
	for cell, handler := range a.config.Overrides {
		impl, ok := a.handlers.Lookup(handler)
		if !ok {
			return nil, fmt.Errorf("override for cell %q names unknown handler %q", cell, handler)
		}
		out[cell] = impl
	}
	return out, nil
}
