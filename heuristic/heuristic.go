// Package heuristic implements the rule-ranked, search-free agents of
// spec.md §4.E: five move-selection styles of increasing tactical
// depth, each grounded on its own file under
// original_source/.../tournament_system/agents/. None of them search;
// each scores or filters rules.LegalMoves(state) against the current
// rules.GameState and returns a single choice, falling back to a
// uniformly random legal move if its own rules produce no candidate.
package heuristic

import (
	"math"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/rules"
)

// split partitions moves into MOVE and KICK actions, matching every
// heuristic source file's opening "kick_moves = [m for m in moves if
// m[0] == 'kick']" / "player_moves = ...".
func split(moves []rules.MoveAction) (playerMoves, kickMoves []rules.MoveAction) {
	for _, m := range moves {
		if m.Kind == rules.Kick {
			kickMoves = append(kickMoves, m)
		} else {
			playerMoves = append(playerMoves, m)
		}
	}
	return
}

// goalMoves finds kicks that land in the opponent's goal area — the
// priority-1 rule shared verbatim by every variant's _find_goal_moves.
func goalMoves(s *rules.GameState, kicks []rules.MoveAction) []rules.MoveAction {
	var out []rules.MoveAction
	for _, m := range kicks {
		if rules.InGoalArea(m.To, s.CurrentTeam) {
			out = append(out, m)
		}
	}
	return out
}

// advancingKicks finds kicks that push the ball's row towards the
// kicking team's attacking row.
func advancingKicks(s *rules.GameState, kicks []rules.MoveAction) []rules.MoveAction {
	ballRow := s.Ball.Position.Row
	attack := board.AttackRow(s.CurrentTeam)
	var out []rules.MoveAction
	for _, m := range kicks {
		if (attack > ballRow && m.To.Row > ballRow) || (attack < ballRow && m.To.Row < ballRow) {
			out = append(out, m)
		}
	}
	return out
}

// approachingMoves finds player moves that strictly reduce the mover's
// distance to the ball.
func approachingMoves(s *rules.GameState, moves []rules.MoveAction) []rules.MoveAction {
	ball := s.Ball.Position
	var out []rules.MoveAction
	for _, m := range moves {
		if m.To.ChebyshevDistance(ball) < m.From.ChebyshevDistance(ball) {
			out = append(out, m)
		}
	}
	return out
}

// countNear counts players of team within dist Chebyshev cells of pos.
func countNear(s *rules.GameState, team board.Team, pos board.Position, dist int) int {
	count := 0
	for _, p := range s.PlayersOf(team) {
		if p.Position.ChebyshevDistance(pos) <= dist {
			count++
		}
	}
	return count
}

// advancement returns the signed row progress team makes moving from
// "from" to "to" (positive is forward).
func advancement(team board.Team, from, to board.Position) int {
	if team == board.LEFT {
		return to.Row - from.Row
	}
	return from.Row - to.Row
}

// pickBest returns the move with the highest score, first occurrence
// winning ties — the common "if score > best_score: best = move" idiom
// every scoring variant below uses.
func pickBest(moves []rules.MoveAction, score func(rules.MoveAction) float64) (rules.MoveAction, bool) {
	if len(moves) == 0 {
		return rules.MoveAction{}, false
	}
	best := moves[0]
	bestScore := math.Inf(-1)
	for _, m := range moves {
		sc := score(m)
		if sc > bestScore {
			bestScore = sc
			best = m
		}
	}
	return best, true
}

// pickRandom mirrors random.choice(candidates) using the agent's
// injected randomness seam.
func pickRandom(rng agent.Rand, moves []rules.MoveAction) rules.MoveAction {
	return moves[rng.Intn(len(moves))]
}
