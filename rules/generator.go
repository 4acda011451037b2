package rules

import (
	"sort"

	"github.com/amparooliver/mastergoal-engine/board"
)

// LegalMoves returns the ordered set of legal (kind, from, to) actions for
// state.CurrentTeam. The generator never mutates state. Ordering: all MOVE
// actions (grouped by player in roster order, each player's destinations
// sorted by (row,col)) before all KICK actions (sorted by destination);
// see SPEC_FULL.md §5.C for the rationale.
func LegalMoves(s *GameState) []MoveAction {
	team := s.CurrentTeam
	var moves []MoveAction

	for _, p := range s.PlayersOf(team) {
		dests := moveDestinations(s, *p)
		sort.Slice(dests, func(i, j int) bool { return lessPosition(dests[i], dests[j]) })
		for _, d := range dests {
			moves = append(moves, MoveAction{Kind: Move, From: p.Position, To: d})
		}
	}

	if carrier, ok := s.BallCarrier(); ok && carrier.Team == team {
		kicks := kickDestinations(s, team)
		sort.Slice(kicks, func(i, j int) bool { return lessPosition(kicks[i], kicks[j]) })
		for _, d := range kicks {
			moves = append(moves, MoveAction{Kind: Kick, From: s.Ball.Position, To: d})
		}
	}

	return moves
}

// diagonalStep2 is the set of pure-diagonal, Chebyshev-distance-2 deltas;
// these are the "diagonal step-overs" spec.md §4.C restricts to level 2+.
var diagonalStep2 = [4][2]int{{2, 2}, {2, -2}, {-2, 2}, {-2, -2}}

func isPureDiagonalStep2(dr, dc int) bool {
	for _, d := range diagonalStep2 {
		if d[0] == dr && d[1] == dc {
			return true
		}
	}
	return false
}

// moveDestinations returns every legal MOVE destination for player p.
func moveDestinations(s *GameState, p Player) []board.Position {
	maxDist := 2
	if p.IsGoalkeeper {
		maxDist = 1
	}

	var out []board.Position
	for dr := -maxDist; dr <= maxDist; dr++ {
		for dc := -maxDist; dc <= maxDist; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			to := board.Position{Row: p.Position.Row + dr, Col: p.Position.Col + dc}
			if !to.InBounds() {
				continue
			}
			if p.IsGoalkeeper && !InPenaltyArea(to, p.Team) {
				continue
			}
			if !canMoveTo(s, p, to, dr, dc) {
				continue
			}
			out = append(out, to)
		}
	}
	return out
}

// canMoveTo applies the occupancy, capture, and step-over rules of
// spec.md §4.C to a single candidate destination.
func canMoveTo(s *GameState, p Player, to board.Position, dr, dc int) bool {
	if _, ok := s.PlayerAt(to); ok {
		return false // two players may never share a cell
	}

	if to == s.Ball.Position {
		if _, carried := s.BallCarrier(); carried {
			return false // capture via MOVE is neutral-ball-only; see DESIGN.md
		}
	}

	dist := max(abs(dr), abs(dc))
	if dist != 2 {
		return true // distance 0/1 moves and non-colinear distance-2 "knight" offsets are never blocked
	}

	if isPureDiagonalStep2(dr, dc) && s.Level < 2 {
		return false
	}

	mid, ok := p.Position.Midpoint(to)
	if !ok {
		return true // no well-defined intermediate cell (a "knight" offset)
	}
	if _, occupied := s.PlayerAt(mid); occupied {
		return false
	}
	return true
}

// kickDestinations returns every legal KICK destination from the ball's
// current cell for the kicking team.
func kickDestinations(s *GameState, team board.Team) []board.Position {
	from := s.Ball.Position
	var out []board.Position
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			to := board.Position{Row: row, Col: col}
			if to == from {
				continue
			}
			if from.ChebyshevDistance(to) > 4 {
				continue
			}
			if !rayClear(s, from, to) {
				continue
			}
			if !kickRespectsPassCap(s, team, to) {
				continue
			}
			out = append(out, to)
		}
	}
	return out
}

// rayClear walks the Chebyshev ray from `from` to `to` and reports whether
// every intermediate cell (excluding both endpoints) is free of players
// other than the kicker. Only the 8 compass/diagonal directions have a
// well-defined ray; off-ray targets (e.g. a (3,1) offset) are reported as
// not clear, so no kick ever lands on them.
func rayClear(s *GameState, from, to board.Position) bool {
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	dist := from.ChebyshevDistance(to)
	if !onRay(from, to, dr, dc, dist) {
		return false
	}
	cur := from
	for i := 1; i < dist; i++ {
		cur = board.Position{Row: cur.Row + dr, Col: cur.Col + dc}
		if _, occupied := s.PlayerAt(cur); occupied {
			return false
		}
	}
	return true
}

// onRay reports whether `to` is reachable from `from` by repeating the
// step (dr,dc) exactly dist times — i.e. whether the two cells are
// collinear along one of the 8 ray directions.
func onRay(from, to board.Position, dr, dc, dist int) bool {
	return from.Row+dr*dist == to.Row && from.Col+dc*dist == to.Col
}

// kickRespectsPassCap excludes passes that would push passes_count past
// the level's cap (spec.md §4.C). Shots and captures are never capped.
func kickRespectsPassCap(s *GameState, team board.Team, to board.Position) bool {
	occupant, ok := s.PlayerAt(to)
	if !ok || occupant.Team != team {
		return true // not a pass: shot, clearance, or capture
	}
	return s.PassesCount+1 <= s.cfg.PassCap
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
