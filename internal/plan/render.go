package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

// Dot returns the plan's dependency graph in Graphviz DOT form. Cells render
// as boxes, external bag attributes as dashed ellipses; every edge points
// from a source to the cell it feeds. Output is deterministic: cells in
// evaluation order, attributes sorted by name.
func (p *Plan) Dot() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %q {\n", p.operation)
	sb.WriteString("  rankdir = \"LR\";\n")

	for _, s := range p.steps {
		if s.HasImpl {
			fmt.Fprintf(&sb, "  %q [shape=\"box\"];\n", s.Cell)
		} else {
			fmt.Fprintf(&sb, "  %q [shape=\"box\" style=\"rounded\"];\n", s.Cell)
		}
	}

	attrs := map[string]struct{}{}
	for _, s := range p.steps {
		for _, src := range s.Sources {
			if !src.IsCell {
				attrs[src.Name] = struct{}{}
			}
		}
	}
	attrNames := make([]string, 0, len(attrs))
	for name := range attrs {
		attrNames = append(attrNames, name)
	}
	sort.Strings(attrNames)
	for _, name := range attrNames {
		fmt.Fprintf(&sb, "  %q [shape=\"ellipse\" style=\"dashed\"];\n", name)
	}

	for _, s := range p.steps {
		for _, src := range s.Sources {
			fmt.Fprintf(&sb, "  %q -> %q;\n", src.Name, s.Cell)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// Tree renders the evaluation order as a human-readable tree, one branch per
// step with its sources as leaves.
func (p *Plan) Tree() string {
	tree := treeprint.NewWithRoot(p.operation)
	for i, s := range p.steps {
		label := fmt.Sprintf("%d. %s", i+1, s.Cell)
		if !s.HasImpl {
			label += " (placeholder)"
		}
		if len(s.Sources) == 0 {
			tree.AddNode(label)
			continue
		}
		branch := tree.AddBranch(label)
		for _, src := range s.Sources {
			kind := "input"
			if src.IsCell {
				kind = "cell"
			}
			branch.AddNode(fmt.Sprintf("%s (%s)", src.Name, kind))
		}
	}
	return tree.String()
}
