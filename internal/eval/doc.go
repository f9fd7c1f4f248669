// Package eval executes an operation instance against a caller-owned value
// bag: one synchronous pass in resolved order, deciding per cell whether to
// skip, suppress, or invoke, and propagating staleness along dependency
// edges so a recomputed ancestor forces its dependents to recompute too.
package eval
