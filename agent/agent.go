// Package agent defines the common contract every move-chooser in the
// engine implements — heuristic agents, the minimax engine, the MCTS
// engine — plus the shared error taxonomy described in spec.md §7.
package agent

import (
	"context"
	"time"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/rules"
)

// Agent is the polymorphic contract of spec.md §4.E. Implementations must
// never mutate state and must return a move from legal_moves(state); if
// they cannot decide, they must fall back to a uniformly random legal
// move rather than returning an error.
type Agent interface {
	// Choose returns the agent's move for state, respecting deadline.
	// ctx carries cancellation for long-running searches (MCTS, minimax).
	Choose(ctx context.Context, state *rules.GameState, deadline time.Time) (rules.MoveAction, error)

	// OnGameStart is called once, before the first Choose of a game, with
	// the side this agent will play.
	OnGameStart(side board.Team)

	// OnGameEnd releases any per-game resources (thread-local tables,
	// worker pools). It must be safe to call even if OnGameStart never was.
	OnGameEnd()
}

// RandomFallback returns a uniformly random legal move for state. Every
// agent implementation uses this as its last resort, matching spec.md
// §4.E's fallback requirement and §7 kind 3's recovery policy.
func RandomFallback(state *rules.GameState, rng Rand) (rules.MoveAction, bool) {
	moves := rules.LegalMoves(state)
	if len(moves) == 0 {
		return rules.MoveAction{}, false
	}
	return moves[rng.Intn(len(moves))], true
}

// Rand is the minimal randomness surface agents depend on, so tests can
// substitute a deterministic source without pulling in *rand.Rand's full
// API (the MCTS and heuristic packages need this same seam for S5's
// reproducibility-at-one-thread property).
type Rand interface {
	Intn(n int) int
	Float64() float64
}
