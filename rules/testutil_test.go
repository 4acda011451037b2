package rules

import (
	"testing"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/stretchr/testify/require"
)

// fixturePlayer describes one roster entry for newFixture. Tests build
// states directly (bypassing NewGame's canonical roster) so that
// generator-only scenarios (S2, S4, boundary behaviors) can place pieces
// in arbitrary configurations without tripping the roster-size invariant,
// which is only enforced by Execute's post-condition check, never by the
// generator.
type fixturePlayer struct {
	Team board.Team
	Pos  board.Position
	GK   bool
}

func newFixture(t *testing.T, level int, current board.Team, players []fixturePlayer, ball board.Position) *GameState {
	t.Helper()
	cfg, err := NewLevelConfig(level)
	require.NoError(t, err)

	ps := make([]Player, len(players))
	for i, fp := range players {
		ps[i] = Player{Team: fp.Team, ID: i, Position: fp.Pos, IsGoalkeeper: fp.GK}
	}
	return &GameState{
		Level:              level,
		cfg:                cfg,
		CurrentTeam:        current,
		LastPossessionTeam: current,
		Players:            ps,
		Ball:               Ball{Position: ball},
	}
}
