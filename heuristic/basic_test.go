package heuristic_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/heuristic"
	"github.com/amparooliver/mastergoal-engine/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stdRand struct{ r *rand.Rand }

func (s stdRand) Intn(n int) int   { return s.r.Intn(n) }
func (s stdRand) Float64() float64 { return s.r.Float64() }

func newRand() stdRand { return stdRand{r: rand.New(rand.NewSource(1))} }

func TestBasicChoosesGoalKickWhenAvailable(t *testing.T) {
	s, err := rules.NewGame(1)
	require.NoError(t, err)
	s.CurrentTeam = board.LEFT
	s.Players = []rules.Player{
		{Team: board.LEFT, ID: 0, Position: board.Position{Row: 13, Col: 5}},
		{Team: board.RIGHT, ID: 1, Position: board.Position{Row: 1, Col: 1}},
	}
	s.Ball.Position = board.Position{Row: 13, Col: 5}

	a := heuristic.NewBasic(newRand())
	a.OnGameStart(board.LEFT)
	move, err := a.Choose(context.Background(), s, time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, rules.Kick, move.Kind)
	assert.True(t, rules.InGoalArea(move.To, board.LEFT))
}

func TestBasicReturnsLegalMoveWhenNoGoalAvailable(t *testing.T) {
	s, err := rules.NewGame(1)
	require.NoError(t, err)

	a := heuristic.NewBasic(newRand())
	a.OnGameStart(s.CurrentTeam)
	move, err := a.Choose(context.Background(), s, time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.Contains(t, rules.LegalMoves(s), move)
}
