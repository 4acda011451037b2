package rules

import "github.com/pkg/errors"

// Sentinel errors for the rules engine's two locally recoverable error
// kinds (spec.md §7, kinds 1 and 2). Callers use errors.Is/errors.Cause to
// classify a returned error; see the agent package for the shared Kind
// taxonomy used across the rest of the engine.
var (
	ErrInvalidLevel = errors.New("invalid level")
	ErrIllegalMove  = errors.New("illegal move")
)

// InvariantViolation is raised as a panic, never returned as an error: a
// broken invariant is a programming error (spec.md §7 kind 5), not a
// locally recoverable condition. Only the outermost driver should recover
// it, and only to abort the current game cleanly.
type InvariantViolation struct {
	Reason string
}

func (e InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}

func panicInvariant(reason string) {
	panic(InvariantViolation{Reason: reason})
}
