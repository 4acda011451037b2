package rules

import (
	"testing"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: fresh level-1 state, LEFT to move. The opener MOVE (4,5)->(6,5) must
// be legal; no KICK may appear since the ball is neutral.
func TestS1_OpenerLegalSet(t *testing.T) {
	s, err := NewGame(1)
	require.NoError(t, err)

	moves := LegalMoves(s)
	assert.Contains(t, moves, MoveAction{Kind: Move, From: board.Position{Row: 4, Col: 5}, To: board.Position{Row: 6, Col: 5}})
	for _, m := range moves {
		assert.NotEqual(t, Kick, m.Kind, "fresh opening has a neutral ball; LEFT cannot kick yet")
	}
}

// S2: ball carried by LEFT at (7,5), a RIGHT player blocks the ray at
// (7,7). The kick to (7,9) must be excluded; the kick to (7,6) must appear.
func TestS2_IllegalKickThroughOpponent(t *testing.T) {
	s := newFixture(t, 1, board.LEFT, []fixturePlayer{
		{Team: board.LEFT, Pos: board.Position{Row: 7, Col: 5}},
		{Team: board.RIGHT, Pos: board.Position{Row: 7, Col: 7}},
	}, board.Position{Row: 7, Col: 5})

	moves := LegalMoves(s)
	assert.NotContains(t, moves, MoveAction{Kind: Kick, From: board.Position{Row: 7, Col: 5}, To: board.Position{Row: 7, Col: 9}})
	assert.Contains(t, moves, MoveAction{Kind: Kick, From: board.Position{Row: 7, Col: 5}, To: board.Position{Row: 7, Col: 6}})
}

// S4: after one pass, passes_count=1. With cap=1 and the kicker boxed in
// by teammates in every open ray direction, the only reachable kick
// targets are further passes, which the cap excludes outright — so the
// legal set must contain zero kicks and at least one move.
func TestS4_PassCapExcludesAllKicks(t *testing.T) {
	s := newFixture(t, 1, board.LEFT, []fixturePlayer{
		{Team: board.LEFT, Pos: board.Position{Row: 0, Col: 0}},
		{Team: board.LEFT, Pos: board.Position{Row: 0, Col: 1}},
		{Team: board.LEFT, Pos: board.Position{Row: 1, Col: 0}},
		{Team: board.LEFT, Pos: board.Position{Row: 1, Col: 1}},
		{Team: board.RIGHT, Pos: board.Position{Row: 10, Col: 10}},
	}, board.Position{Row: 0, Col: 0})
	s.PassesCount = 1

	moves := LegalMoves(s)
	hasKick, hasMove := false, false
	for _, m := range moves {
		if m.Kind == Kick {
			hasKick = true
		}
		if m.Kind == Move {
			hasMove = true
		}
	}
	assert.False(t, hasKick, "cap=1 with passes_count=1 must exclude every further pass")
	assert.True(t, hasMove, "the side must still have a move available")
}

func TestKickLength4ClearVsLength5(t *testing.T) {
	s := newFixture(t, 1, board.LEFT, []fixturePlayer{
		{Team: board.LEFT, Pos: board.Position{Row: 7, Col: 5}},
		{Team: board.RIGHT, Pos: board.Position{Row: 7, Col: 9}},
	}, board.Position{Row: 7, Col: 5})

	moves := LegalMoves(s)
	assert.Contains(t, moves, MoveAction{Kind: Kick, From: board.Position{Row: 7, Col: 5}, To: board.Position{Row: 7, Col: 9}})
	for _, m := range moves {
		assert.False(t, m.Kind == Kick && m.To == board.Position{Row: 7, Col: 10}, "col 10 is distance 5 from col 5; must not be reachable")
	}
}

func TestDistance2MoveBlockedByIntermediatePlayer(t *testing.T) {
	s := newFixture(t, 1, board.LEFT, []fixturePlayer{
		{Team: board.LEFT, Pos: board.Position{Row: 4, Col: 5}},
		{Team: board.LEFT, Pos: board.Position{Row: 5, Col: 5}},
		{Team: board.RIGHT, Pos: board.Position{Row: 10, Col: 10}},
	}, board.Position{Row: 7, Col: 0})

	moves := LegalMoves(s)
	assert.NotContains(t, moves, MoveAction{Kind: Move, From: board.Position{Row: 4, Col: 5}, To: board.Position{Row: 6, Col: 5}})
}

func TestDiagonalStep2RestrictedBelowLevel2(t *testing.T) {
	s1 := newFixture(t, 1, board.LEFT, []fixturePlayer{
		{Team: board.LEFT, Pos: board.Position{Row: 5, Col: 5}},
		{Team: board.RIGHT, Pos: board.Position{Row: 10, Col: 10}},
	}, board.Position{Row: 0, Col: 0})
	moves1 := LegalMoves(s1)
	assert.NotContains(t, moves1, MoveAction{Kind: Move, From: board.Position{Row: 5, Col: 5}, To: board.Position{Row: 7, Col: 7}})

	s2 := newFixture(t, 2, board.LEFT, []fixturePlayer{
		{Team: board.LEFT, Pos: board.Position{Row: 5, Col: 5}},
		{Team: board.RIGHT, Pos: board.Position{Row: 10, Col: 10}},
	}, board.Position{Row: 0, Col: 0})
	moves2 := LegalMoves(s2)
	assert.Contains(t, moves2, MoveAction{Kind: Move, From: board.Position{Row: 5, Col: 5}, To: board.Position{Row: 7, Col: 7}})
}

func TestGoalkeeperConfinedToPenaltyArea(t *testing.T) {
	s := newFixture(t, 3, board.LEFT, []fixturePlayer{
		{Team: board.LEFT, Pos: board.Position{Row: 1, Col: 2}, GK: true},
		{Team: board.RIGHT, Pos: board.Position{Row: 10, Col: 10}},
	}, board.Position{Row: 7, Col: 5})

	moves := LegalMoves(s)
	for _, m := range moves {
		if m.Kind == Move {
			assert.True(t, InPenaltyArea(m.To, board.LEFT), "goalkeeper move %v left its penalty area", m)
		}
	}
}
