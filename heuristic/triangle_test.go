package heuristic_test

import (
	"context"
	"testing"
	"time"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/heuristic"
	"github.com/amparooliver/mastergoal-engine/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangleChoosesGoalKickWhenAvailable(t *testing.T) {
	s, err := rules.NewGame(3)
	require.NoError(t, err)
	s.CurrentTeam = board.LEFT
	s.Players = []rules.Player{
		{Team: board.LEFT, ID: 0, Position: board.Position{Row: 13, Col: 5}},
		{Team: board.RIGHT, ID: 1, Position: board.Position{Row: 1, Col: 1}},
	}
	s.Ball.Position = board.Position{Row: 13, Col: 5}

	a := heuristic.NewTriangle(heuristic.TriangleFluid)
	a.OnGameStart(board.LEFT)
	move, err := a.Choose(context.Background(), s, time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, rules.Kick, move.Kind)
	assert.True(t, rules.InGoalArea(move.To, board.LEFT))
}

func TestTriangleReturnsLegalMoveWhenNoGoalAvailable(t *testing.T) {
	s, err := rules.NewGame(3)
	require.NoError(t, err)

	a := heuristic.NewTriangle(heuristic.TriangleCompact)
	a.OnGameStart(s.CurrentTeam)
	move, err := a.Choose(context.Background(), s, time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.Contains(t, rules.LegalMoves(s), move)
}
