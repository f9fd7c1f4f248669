package hclshape

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/cellflow/internal/ctxlog"
	"github.com/vk/cellflow/internal/ctyconv"
	"github.com/vk/cellflow/internal/fsutil"
	"github.com/vk/cellflow/internal/handlers"
	"github.com/vk/cellflow/internal/op"
	"github.com/vk/cellflow/internal/schema"
)

// Loader parses operation manifests into sealed definitions.
type Loader struct {
	handlers *handlers.Handlers
}

// NewLoader creates a Loader resolving impl names against the given registry.
func NewLoader(h *handlers.Handlers) *Loader {
	return &Loader{handlers: h}
}

// Load parses every .hcl manifest reachable from the given paths (files are
// taken as-is, directories are walked) and returns one sealed definition per
// operation block, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*op.Definition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := collectManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	var defs []*op.Definition

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		var root schema.Root
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, operation := range root.Operations {
			def, err := l.translateOperation(operation)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
			logger.Debug("Operation shape loaded.", "operation", def.Name(), "cells", def.Len())
			defs = append(defs, def)
		}
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no operation blocks found in %v", paths)
	}
	return defs, nil
}

// translateOperation builds and seals one definition from a decoded
// operation block. Per-cell problems accumulate so a misdeclared manifest
// reports everything wrong with it at once.
func (l *Loader) translateOperation(o *schema.Operation) (*op.Definition, error) {
	builder := op.NewDefinition(o.Name)
	var errs *multierror.Error

	for _, cell := range o.Cells {
		impl, err := l.translateCell(cell)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("operation %q, cell %q: %w", o.Name, cell.Name, err))
			continue
		}

		rename, err := invertRename(cell.Rename)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("operation %q, cell %q: %w", o.Name, cell.Name, err))
			continue
		}

		if err := builder.Declare(cell.Name, impl, rename); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("operation %q: %w", o.Name, err))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	def, err := builder.Seal()
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", o.Name, err)
	}
	return def, nil
}

// translateCell compiles one cell block into its default implementation, or
// nil for a placeholder.
func (l *Loader) translateCell(c *schema.Cell) (*op.Impl, error) {
	kinds := 0
	if c.Impl != "" {
		kinds++
	}
	if c.Formula != nil {
		kinds++
	}
	if c.Default != nil {
		kinds++
	}
	if kinds > 1 {
		return nil, fmt.Errorf("impl, formula, and default are mutually exclusive")
	}

	switch {
	case c.Impl != "":
		registered, ok := l.handlers.Lookup(c.Impl)
		if !ok {
			return nil, fmt.Errorf("unknown impl %q", c.Impl)
		}
		if len(c.Params) > 0 {
			// The manifest rebinds the handler to its own parameter names;
			// arity must match the registered declaration.
			if len(c.Params) != len(registered.Params) {
				return nil, fmt.Errorf("impl %q takes %d parameters, manifest declares %d",
					c.Impl, len(registered.Params), len(c.Params))
			}
			return op.Func(c.Params, registered.Fn), nil
		}
		return registered, nil

	case c.Formula != nil:
		return formulaImpl(c.Formula), nil

	case c.Default != nil:
		v, err := ctyconv.FromCty(*c.Default)
		if err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
		if v == nil {
			return nil, fmt.Errorf("default must not be null")
		}
		return op.Const(v), nil

	default:
		// Placeholder: satisfied by an instance override or a bag value.
		return nil, nil
	}
}

// invertRename turns the manifest's alias→source mapping into the engine's
// source→alias table, rejecting two aliases reading the same source.
func invertRename(rename map[string]string) (map[string]string, error) {
	if len(rename) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(rename))
	for alias, source := range rename {
		if prev, dup := out[source]; dup {
			first, second := prev, alias
			if second < first {
				first, second = second, first
			}
			return nil, fmt.Errorf("rename binds source %q to both %q and %q", source, first, second)
		}
		out[source] = alias
	}
	return out, nil
}

// collectManifestFiles expands the given paths into concrete .hcl files.
func collectManifestFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
