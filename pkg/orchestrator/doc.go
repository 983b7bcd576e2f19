// Package orchestrator wires the definition loader → field registry → panel
// pipeline, providing dependency injection friendly helpers for hosts that
// prefer a single entry point.
package orchestrator
