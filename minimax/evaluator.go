// Package minimax implements the alpha-beta search engine of spec.md
// §4.G: a fixed-depth (or time-boxed, iteratively deepened) search over
// rules.GameState driven by a linear weighted evaluator, the weights and
// depth loaded from an external file per spec.md §6. Grounded on
// original_source/.../agents/mcts_minimax_random.py's MinimaxAgent.
package minimax

import (
	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/rules"
	"gonum.org/v1/gonum/floats"
)

// ExpectedFeatureLength is the feature-vector length FeatureVector always
// produces, uniform across all three rule levels (levels without a
// goalkeeper simply report the goalkeeper feature as 0).
const ExpectedFeatureLength = 8

// FeatureVector computes the 8-dimensional feature vector of spec.md
// §4.G from perspective of team: every feature is signed so that a
// larger value is always better for team, matching the sign convention
// the linear evaluator (Evaluate) relies on.
func FeatureVector(s *rules.GameState, team board.Team) []float64 {
	opp := team.Opponent()
	v := make([]float64, ExpectedFeatureLength)

	v[0] = goalDifferential(s, team)
	v[1] = passPressure(s, team)
	v[2] = ballAdvancement(s, team)
	v[3] = nearBallCount(s, team) - nearBallCount(s, opp)
	v[4] = float64(zoneControlDiff(s, team))
	v[5] = -nearestOwnDistance(s, team)
	v[6] = goalkeeperInPosition(s, team)
	v[7] = shotOpportunity(s, team)
	return v
}

func goalDifferential(s *rules.GameState, team board.Team) float64 {
	if team == board.LEFT {
		return float64(s.LeftGoals - s.RightGoals)
	}
	return float64(s.RightGoals - s.LeftGoals)
}

// passPressure rewards an approaching pass cap only while team itself
// holds the ball: a team near its cap must shoot or advance soon, which
// the evaluator should treat as present urgency, not as a penalty.
func passPressure(s *rules.GameState, team board.Team) float64 {
	if s.LastPossessionTeam != team || s.Config().PassCap == 0 {
		return 0
	}
	return float64(s.PassesCount) / float64(s.Config().PassCap)
}

// ballAdvancement measures how close the ball is to team's attacking
// row, normalized to [0,1].
func ballAdvancement(s *rules.GameState, team board.Team) float64 {
	attackRow := board.AttackRow(team)
	defendRow := board.DefendRow(team)
	total := attackRow - defendRow
	if total == 0 {
		return 0
	}
	progressed := s.Ball.Position.Row - defendRow
	return float64(progressed) / float64(total)
}

// nearBallRadius bounds the "near the ball" neighborhood used by
// nearBallCount.
const nearBallRadius = 3

func nearBallCount(s *rules.GameState, team board.Team) float64 {
	count := 0
	for _, p := range s.PlayersOf(team) {
		if p.Position.ChebyshevDistance(s.Ball.Position) <= nearBallRadius {
			count++
		}
	}
	return float64(count)
}

func zoneControlDiff(s *rules.GameState, team board.Team) int {
	own := make(map[[2]int]bool)
	opp := make(map[[2]int]bool)
	for _, p := range s.Players {
		zr, zc := rules.ZoneIndex(p.Position)
		if p.Team == team {
			own[[2]int{zr, zc}] = true
		} else {
			opp[[2]int{zr, zc}] = true
		}
	}
	return len(own) - len(opp)
}

func nearestOwnDistance(s *rules.GameState, team board.Team) float64 {
	best := -1
	for _, p := range s.PlayersOf(team) {
		d := p.Position.ChebyshevDistance(s.Ball.Position)
		if best == -1 || d < best {
			best = d
		}
	}
	if best == -1 {
		return 0
	}
	return float64(best)
}

// goalkeeperInPosition reports 1 when team fields a goalkeeper and it
// currently sits inside its own penalty area, 0 otherwise (levels with
// no goalkeeper always report 0, contributing nothing to the dot
// product regardless of weight).
func goalkeeperInPosition(s *rules.GameState, team board.Team) float64 {
	if !s.Config().HasGoalkeeper {
		return 0
	}
	for _, p := range s.PlayersOf(team) {
		if p.IsGoalkeeper && rules.InPenaltyArea(p.Position, team) {
			return 1
		}
	}
	return 0
}

// shotOpportunity reports 1 when team both carries the ball and the
// ball already sits within kicking range (Chebyshev <= 4) of the
// opponent's goal mouth, 0 otherwise.
func shotOpportunity(s *rules.GameState, team board.Team) float64 {
	carrier, ok := s.BallCarrier()
	if !ok || carrier.Team != team {
		return 0
	}
	opp := team.Opponent()
	goalRow := board.AttackRow(team)
	nearestGoalCol := clampCol(s.Ball.Position.Col)
	target := board.Position{Row: goalRow, Col: nearestGoalCol}
	if s.Ball.Position.ChebyshevDistance(target) <= 4 {
		_ = opp
		return 1
	}
	return 0
}

func clampCol(col int) int {
	switch {
	case col < 3:
		return 3
	case col > 7:
		return 7
	default:
		return col
	}
}

// Evaluate scores state from team's perspective as the weighted dot
// product w . FeatureVector(state, team), matching spec.md §4.G's
// "Sigma w_i * phi_i" evaluator definition.
func Evaluate(s *rules.GameState, team board.Team, w *Weights) float64 {
	return floats.Dot(w.Values, FeatureVector(s, team))
}
