package op

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// Builder accumulates cell declarations for one operation shape. Declaration
// order is preserved; it is the tie-break used by the resolver for cells with
// no relative ordering constraint.
type Builder struct {
	name  string
	cells []Cell
	index map[string]int
	errs  *multierror.Error
}

// NewDefinition starts a Builder for an operation shape with the given name.
func NewDefinition(name string) *Builder {
	return &Builder{
		name:  name,
		index: make(map[string]int),
	}
}

// Declare registers one cell with an optional default implementation and an
// optional rename table. A duplicate name is rejected with DuplicateCellError;
// redeclaration never overwrites an earlier cell.
func (b *Builder) Declare(name string, impl *Impl, rename map[string]string) error {
	if err := b.declare(Cell{Name: name, Impl: impl, Rename: rename}); err != nil {
		b.errs = multierror.Append(b.errs, err)
		return err
	}
	return nil
}

// DeclareMany registers several placeholder cells: no default implementation,
// no rename table. Each must later be satisfied by an instance override or by
// a value already present in the bag.
func (b *Builder) DeclareMany(names ...string) error {
	for _, name := range names {
		if err := b.declare(Cell{Name: name}); err != nil {
			b.errs = multierror.Append(b.errs, err)
			return err
		}
	}
	return nil
}

func (b *Builder) declare(c Cell) error {
	if c.Name == "" {
		return fmt.Errorf("cell name is required")
	}
	if _, exists := b.index[c.Name]; exists {
		return &DuplicateCellError{Cell: c.Name}
	}
	if err := validateRename(c); err != nil {
		return err
	}
	b.index[c.Name] = len(b.cells)
	b.cells = append(b.cells, c)
	return nil
}

// validateRename rejects rename tables that map two different source names to
// the same parameter alias, which would make parameter resolution ambiguous.
func validateRename(c Cell) error {
	if len(c.Rename) < 2 {
		return nil
	}
	seen := make(map[string]string, len(c.Rename))
	for source, alias := range c.Rename {
		if prev, ok := seen[alias]; ok {
			first, second := prev, source
			if second < first {
				first, second = second, first
			}
			return fmt.Errorf("cell %q: rename maps both %q and %q to parameter %q", c.Name, first, second, alias)
		}
		seen[alias] = source
	}
	return nil
}

// Seal freezes the declared cells into an immutable Definition. Any error
// collected during declaration is returned here as well, so callers that
// ignore per-Declare errors still cannot obtain a malformed Definition.
func (b *Builder) Seal() (*Definition, error) {
	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	index := make(map[string]int, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}
	return &Definition{
		id:    uuid.New(),
		name:  b.name,
		cells: cells,
		index: index,
	}, nil
}

// Definition is the ordered, immutable collection of cells belonging to one
// operation shape. It is built once at shape-declaration time and shared
// read-only across every Instance of that shape.
type Definition struct {
	id    uuid.UUID
	name  string
	cells []Cell
	index map[string]int
}

// ID is the unique identity of this Definition, assigned at Seal. Resolved
// plans are cached against it.
func (d *Definition) ID() uuid.UUID { return d.id }

// Name returns the operation shape name.
func (d *Definition) Name() string { return d.name }

// Len returns the number of declared cells.
func (d *Definition) Len() int { return len(d.cells) }

// Cells returns the cells in declaration order. The slice is a copy.
func (d *Definition) Cells() []Cell {
	out := make([]Cell, len(d.cells))
	copy(out, d.cells)
	return out
}

// Cell looks up a declared cell by name.
func (d *Definition) Cell(name string) (Cell, bool) {
	i, ok := d.index[name]
	if !ok {
		return Cell{}, false
	}
	return d.cells[i], true
}

// Has reports whether name is a declared cell of this Definition.
func (d *Definition) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Instance binds this Definition to a set of per-use implementation
// overrides. Instances are cheap and disposable; the Definition is shared.
func (d *Definition) Instance(overrides map[string]*Impl) *Instance {
	return &Instance{def: d, overrides: overrides}
}

// Instance is a Definition plus per-call-site implementation overrides.
type Instance struct {
	def       *Definition
	overrides map[string]*Impl
}

// Definition returns the shared shape this instance was built from.
func (in *Instance) Definition() *Definition { return in.def }

// Overrides returns the override table. Callers must not mutate it after
// constructing the instance.
func (in *Instance) Overrides() map[string]*Impl { return in.overrides }

// Effective returns the implementation that will run for the named cell: the
// override when present, else the cell's default, else nil.
func (in *Instance) Effective(name string) *Impl {
	if impl, ok := in.overrides[name]; ok && impl != nil {
		return impl
	}
	c, ok := in.def.Cell(name)
	if !ok {
		return nil
	}
	return c.Impl
}
