package rules

import (
	"testing"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsIndependent(t *testing.T) {
	s, err := NewGame(1)
	require.NoError(t, err)
	clone := s.Clone()

	clone.Players[0].Position = board.Position{Row: 0, Col: 0}
	clone.LeftGoals = 5

	assert.NotEqual(t, clone.Players[0].Position, s.Players[0].Position)
	assert.Equal(t, 0, s.LeftGoals)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, err := NewGame(3)
	require.NoError(t, err)
	s.LeftGoals = 1
	s.PassesCount = 2
	s.TurnCount = 7
	s.Players[0].Position = board.Position{Row: 2, Col: 4}

	snap := TakeSnapshot(s)
	restored, err := Restore(snap)
	require.NoError(t, err)

	assert.Equal(t, s.Level, restored.Level)
	assert.Equal(t, s.CurrentTeam, restored.CurrentTeam)
	assert.Equal(t, s.LeftGoals, restored.LeftGoals)
	assert.Equal(t, s.RightGoals, restored.RightGoals)
	assert.Equal(t, s.PassesCount, restored.PassesCount)
	assert.Equal(t, s.TurnCount, restored.TurnCount)
	assert.Equal(t, s.Ball, restored.Ball)
	require.Len(t, restored.Players, len(s.Players))
	for i := range s.Players {
		assert.Equal(t, s.Players[i], restored.Players[i])
	}
}

func TestInvalidLevelRejected(t *testing.T) {
	_, err := NewGame(4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestInvariantViolationPanicsOnOverlap(t *testing.T) {
	s := newFixture(t, 1, board.LEFT, []fixturePlayer{
		{Team: board.LEFT, Pos: board.Position{Row: 4, Col: 5}},
		{Team: board.RIGHT, Pos: board.Position{Row: 10, Col: 5}},
	}, board.Position{Row: 7, Col: 5})

	assert.Panics(t, func() {
		s.Players[1].Position = s.Players[0].Position
		s.checkInvariants()
	})
}
