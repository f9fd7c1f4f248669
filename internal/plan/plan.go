package plan

// Source is one resolved input of a cell: the name it resolves to after
// rename rewriting, and whether that name is a declared cell of the same
// operation. Names that match no cell are external bag attributes: they are
// still required at evaluation time but impose no ordering constraint.
type Source struct {
	Name   string
	IsCell bool
}

// Step is one cell in evaluation order together with its resolved sources.
// Sources are positional: the i-th source feeds the i-th declared parameter
// of whatever implementation the instance binds for this cell.
type Step struct {
	Cell    string
	Sources []Source

	// HasImpl records whether an effective implementation existed when the
	// plan was resolved. Placeholders without overrides resolve with no
	// implementation and no sources; whether that is an error is decided at
	// evaluation time, when the bag is known.
	HasImpl bool
}

// Plan is a valid linear evaluation order for one operation shape under one
// override shape. Plans are immutable after Resolve and safe to share across
// concurrent calls operating on distinct bags.
type Plan struct {
	operation string
	steps     []Step
	pos       map[string]int
}

// Operation returns the name of the operation shape this plan was resolved
// from.
func (p *Plan) Operation() string { return p.operation }

// Len returns the number of steps.
func (p *Plan) Len() int { return len(p.steps) }

// Steps returns the steps in evaluation order. The slice is a copy; the
// steps' source slices are shared and must not be mutated.
func (p *Plan) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// Order returns the cell names in evaluation order.
func (p *Plan) Order() []string {
	out := make([]string, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.Cell
	}
	return out
}

// Position returns a cell's index in evaluation order.
func (p *Plan) Position(cell string) (int, bool) {
	i, ok := p.pos[cell]
	return i, ok
}

// Sources returns the resolved sources of one cell, or nil when the cell is
// not part of this plan. The slice is shared and must not be mutated.
func (p *Plan) Sources(cell string) []Source {
	i, ok := p.pos[cell]
	if !ok {
		return nil
	}
	return p.steps[i].Sources
}
