package hclshape

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/cellflow/internal/bag"
	"github.com/vk/cellflow/internal/ctxlog"
	"github.com/vk/cellflow/internal/ctyconv"
)

// LoadBag seeds a value bag from a flat HCL attribute file, e.g.
//
//	prices   = [50, 25, 25]
//	tax_rate = 0.05
//
// Attributes are inserted in source order, so the bag's iteration order
// matches the file. Expressions are evaluated statically: they may not
// reference variables or call functions.
func LoadBag(ctx context.Context, path string) (bag.Bag, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Bag file loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse bag file %s: %w", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read bag file %s: %w", path, diags)
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	b := bag.New()
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("bag file %s, attribute %q: %w", path, attr.Name, diags)
		}
		native, err := ctyconv.FromCty(val)
		if err != nil {
			return nil, fmt.Errorf("bag file %s, attribute %q: %w", path, attr.Name, err)
		}
		b.Set(attr.Name, native)
	}

	logger.Debug("Bag file loaded.", "path", path, "attributes", b.Len())
	return b, nil
}
