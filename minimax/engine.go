package minimax

import (
	"context"
	"sort"
	"time"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/rules"
	"github.com/rs/zerolog/log"
)

// Engine is an alpha-beta search agent: iterative deepening up to either
// the weights file's tuned depth or a config-level DepthOverride,
// time-boxed by the deadline passed to Choose. Grounded on
// original_source/.../agents/mcts_minimax_random.py's MinimaxAgent,
// adapted from its fixed-depth negamax into the iterative-deepening,
// deadline-respecting shape spec.md §5 requires of every agent.
type Engine struct {
	weights *Weights
	side    board.Team
}

// NewEngine builds a search agent bound to weights. maxDepthOverride, if
// > 0, takes precedence over weights.Depth (config.Minimax.DepthOverride
// in SPEC_FULL.md §7).
func NewEngine(weights *Weights, maxDepthOverride int) *Engine {
	w := *weights
	if maxDepthOverride > 0 {
		w.Depth = maxDepthOverride
	}
	return &Engine{weights: &w}
}

func (e *Engine) OnGameStart(side board.Team) { e.side = side }
func (e *Engine) OnGameEnd()                  {}

// Choose runs iterative deepening from depth 1 up to e.weights.Depth,
// returning the best move found by the last depth that completed before
// deadline or ctx cancellation. A depth that times out mid-search still
// yields the best move discovered at the shallower, already-completed
// depth — spec.md §7's KindTimeoutExceeded is "the move is still
// applied", never a dropped turn.
func (e *Engine) Choose(ctx context.Context, state *rules.GameState, deadline time.Time) (rules.MoveAction, error) {
	moves := rules.LegalMoves(state)
	if len(moves) == 0 {
		return rules.MoveAction{}, agent.New(agent.KindInvalidInput, "no legal moves available")
	}

	best := moves[0]

	for depth := 1; depth <= e.weights.Depth; depth++ {
		if pastDeadline(ctx, deadline) {
			log.Debug().Int("depth", depth).Msg("minimax-deadline-exceeded")
			break
		}
		ordered := orderMoves(state, moves)
		depthBest := ordered[0]
		depthBestScore := negInf
		alpha, beta := negInf, posInf

		for _, m := range ordered {
			if pastDeadline(ctx, deadline) {
				break
			}
			clone := state.Clone()
			if _, err := rules.Execute(clone, m); err != nil {
				continue
			}
			score := -e.search(ctx, clone, depth-1, -beta, -alpha, deadline)
			if score > depthBestScore {
				depthBestScore = score
				depthBest = m
			}
			if score > alpha {
				alpha = score
			}
		}

		if pastDeadline(ctx, deadline) {
			log.Debug().Int("depth", depth).Msg("minimax-deadline-exceeded")
			break
		}
		if depthBestScore > negInf {
			best = depthBest
			log.Debug().Int("depth", depth).Str("move", best.String()).Int("score", depthBestScore).Msg("minimax-deepening")
		}
	}
	return best, nil
}

const (
	negInf = -1 << 30
	posInf = 1 << 30
)

func pastDeadline(ctx context.Context, deadline time.Time) bool {
	if ctx.Err() != nil {
		return true
	}
	return time.Now().After(deadline)
}

// search is the recursive alpha-beta negamax over rules.GameState,
// scored from the mover's own perspective at every ply (the sign flip
// happens at the call site, matching the teacher's negamax shape).
func (e *Engine) search(ctx context.Context, s *rules.GameState, depth int, alpha, beta int, deadline time.Time) int {
	if ended, winner := rules.IsGameOver(s, rules.TerminalOptions{}); ended {
		return terminalScore(s, winner)
	}
	if depth == 0 || pastDeadline(ctx, deadline) {
		return int(Evaluate(s, s.CurrentTeam, e.weights) * evalScale)
	}

	moves := rules.LegalMoves(s)
	if len(moves) == 0 {
		return 0
	}
	ordered := orderMoves(s, moves)

	best := negInf
	for _, m := range ordered {
		clone := s.Clone()
		if _, err := rules.Execute(clone, m); err != nil {
			continue
		}
		score := -e.search(ctx, clone, depth-1, -beta, -alpha, deadline)
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evalScale converts the floating evaluator score into the engine's
// integer score domain, keeping alpha-beta pruning on plain ints while
// preserving enough resolution for the weighted features to matter.
const evalScale = 1000

func terminalScore(s *rules.GameState, winner rules.Outcome) int {
	team := s.CurrentTeam
	switch winner {
	case rules.LeftWins:
		if team == board.LEFT {
			return posInf / 2
		}
		return negInf / 2
	case rules.RightWins:
		if team == board.RIGHT {
			return posInf / 2
		}
		return negInf / 2
	default:
		return 0
	}
}

// orderMoves sorts moves kicks-first, then by how much the move reduces
// a mover's Chebyshev distance to the ball, per SPEC_FULL.md §5.G's move
// ordering ("kicks before moves, moves sorted by distance-reduction to
// the ball") — intended to search the most promising branches first so
// alpha-beta prunes more under a time box.
func orderMoves(s *rules.GameState, moves []rules.MoveAction) []rules.MoveAction {
	ordered := make([]rules.MoveAction, len(moves))
	copy(ordered, moves)
	ball := s.Ball.Position

	key := func(m rules.MoveAction) (int, int) {
		if m.Kind == rules.Kick {
			return 0, 0
		}
		before := m.From.ChebyshevDistance(ball)
		after := m.To.ChebyshevDistance(ball)
		return 1, before - after // larger reduction sorts first within rank 1
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		rankI, reductionI := key(ordered[i])
		rankJ, reductionJ := key(ordered[j])
		if rankI != rankJ {
			return rankI < rankJ
		}
		return reductionI > reductionJ
	})
	return ordered
}
