package op

import "fmt"

// Failure is the single capability the engine requires of domain value types.
// A value reporting IsFailure() == true is ordinary data in the bag: it is
// never an engine error, it only suppresses invocation of dependent cells.
// Concrete failure payloads are supplied by calling code.
type Failure interface {
	IsFailure() bool
}

// IsFailure reports whether v carries the failure marker.
func IsFailure(v any) bool {
	f, ok := v.(Failure)
	return ok && f.IsFailure()
}

// ImplError is the failure value the evaluator stores when a cell
// implementation returns a non-nil error. It keeps Go's (value, error)
// calling convention without turning an implementation error into a fatal
// configuration error: downstream cells see a failure marker and are
// suppressed, and the next call re-evaluates the cell like any other failure.
type ImplError struct {
	Cell string
	Err  error
}

func (e *ImplError) IsFailure() bool { return true }

func (e *ImplError) Error() string {
	return fmt.Sprintf("cell %q: %v", e.Cell, e.Err)
}

func (e *ImplError) Unwrap() error { return e.Err }
