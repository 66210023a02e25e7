// Package errors defines sentinel error values for Envault operations.
//
// Errors are grouped by the operation family that produces them and are
// intended to be wrapped with fmt.Errorf("%w: ...") at the point of failure,
// then checked with errors.Is at the command layer. None of these values is
// process-fatal: every operation boundary recovers, reports, and lets the
// caller continue.
package errors
