// Package schema defines the HCL shapes of operation manifests. Translation
// into engine definitions lives in the hclshape package; this package is
// decode targets only.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Cell represents a `cell` block inside an `operation` block. At most one of
// Impl, Formula, or Default may be set; a block with none of them is a
// placeholder that must be satisfied by an instance override or a value
// already present in the bag.
type Cell struct {
	Name string `hcl:"name,label"`

	// Impl names a registered Go handler. Params supplies the declared
	// parameter names when they differ from the handler's registered ones.
	Impl   string   `hcl:"impl,optional"`
	Params []string `hcl:"params,optional"`

	// Formula is an HCL expression evaluated as the cell's implementation.
	// Its variable roots become the declared parameter names.
	Formula hcl.Expression `hcl:"formula,optional"`

	// Default is a literal constant the cell produces when neither an
	// override nor a bag value supplies it.
	Default *cty.Value `hcl:"default,optional"`

	// Rename maps a parameter alias used by this cell's implementation to
	// the source cell it reads, e.g. rename = { base = "subtotal" }.
	Rename map[string]string `hcl:"rename,optional"`
}

// Operation represents a top-level `operation` block declaring one shape.
type Operation struct {
	Name  string  `hcl:"name,label"`
	Cells []*Cell `hcl:"cell,block"`
}

// Root represents the top-level structure of a manifest file.
type Root struct {
	Operations []*Operation `hcl:"operation,block"`
	Remain     hcl.Body     `hcl:",remain"`
}
