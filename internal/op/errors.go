package op

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks across package boundaries.
var (
	ErrDuplicateCell = errors.New("duplicate cell")
	ErrCellMissing   = errors.New("missing cell")
	ErrCycle         = errors.New("dependency cycle")
)

// DuplicateCellError reports a cell name declared twice in one Definition.
type DuplicateCellError struct {
	Cell string
}

func (e *DuplicateCellError) Error() string {
	return fmt.Sprintf("cell %q is already declared", e.Cell)
}

func (e *DuplicateCellError) Unwrap() error { return ErrDuplicateCell }

// CellMissingError is fatal for a whole call. It is raised when a required
// source name resolves to neither a declared cell nor a bag attribute, or
// when a cell is due for evaluation but has no effective implementation
// (Missing empty).
type CellMissingError struct {
	// Cell is the cell that was being evaluated.
	Cell string
	// Missing is the unresolved source name, or empty when the cell itself
	// had no implementation to run.
	Missing string
}

func (e *CellMissingError) Error() string {
	if e.Missing == "" {
		return fmt.Sprintf("cell %q has no implementation and no value", e.Cell)
	}
	return fmt.Sprintf("cell %q is missing %q", e.Cell, e.Missing)
}

func (e *CellMissingError) Unwrap() error { return ErrCellMissing }

// CycleError reports a dependency cycle found at resolution time, before any
// cell executes. Path is one deterministic witness, closed on its first node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "dependency cycle"
	}
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Unwrap() error { return ErrCycle }
