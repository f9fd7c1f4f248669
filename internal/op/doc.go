// Package op holds the declaration model of the engine: cells, operation
// definitions, instances with overrides, the failure-marker contract, and the
// engine's error taxonomy. A Definition is built once per operation shape and
// shared read-only; Instances are created per use-site and are cheap.
package op
