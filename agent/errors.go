package agent

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the error taxonomy of spec.md §7.
type Kind int

const (
	// KindIllegalMove: a move submitted that is not in legal_moves(state).
	KindIllegalMove Kind = iota
	// KindInvalidInput: malformed position, out-of-range level, unknown difficulty.
	KindInvalidInput
	// KindAgentFailure: an agent errored or returned no move; recovered locally.
	KindAgentFailure
	// KindTimeoutExceeded: a search returned late; the move is still applied.
	KindTimeoutExceeded
	// KindInvariantViolation: a broken post-condition; fatal, aborts the game.
	KindInvariantViolation
	// KindResourceExhaustion: a worker pool could not start; degrade gracefully.
	KindResourceExhaustion
)

func (k Kind) String() string {
	switch k {
	case KindIllegalMove:
		return "illegal_move"
	case KindInvalidInput:
		return "invalid_input"
	case KindAgentFailure:
		return "agent_failure"
	case KindTimeoutExceeded:
		return "timeout_exceeded"
	case KindInvariantViolation:
		return "invariant_violation"
	case KindResourceExhaustion:
		return "resource_exhaustion"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error wraps an underlying cause with the Kind that classifies how the
// caller should react to it. Kinds 1-4 and 6 are local and recoverable;
// kind 5 is never constructed as an Error (see rules.InvariantViolation,
// which is a panic, not a returned error).
type Error struct {
	Kind  Kind
	cause error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, cause: errors.New(message)}
}

func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, cause: errors.Wrap(cause, message)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// IsRecoverable reports whether the caller may safely continue the game
// after this error (every kind except invariant violations, which never
// reach this type in the first place).
func (e *Error) IsRecoverable() bool {
	return e.Kind != KindInvariantViolation
}
