package rules

import (
	"fmt"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/pkg/errors"
)

// LevelConfig captures everything that varies between the three rule
// levels: roster size, whether goalkeepers exist, the pass cap, and the
// special-tile set (level 3 only).
type LevelConfig struct {
	Level               int
	FieldPlayersPerTeam int
	HasGoalkeeper       bool
	PassCap             int
	SpecialTiles        map[board.Position]board.Team
}

// goalCols is the set of columns spanning each goal mouth. Grounded on
// heuristic_agent_level2.py's goal_cols = [3, 4, 5, 6, 7].
var goalCols = [5]int{3, 4, 5, 6, 7}

// defaultSpecialTiles are the level-3 extra-turn cells: flank cells,
// point-symmetric about the board center, with one tile in each half for
// each team (LEFT on column 1, RIGHT on column 9). The originating tournament
// system's exact set is not present in the retrieval pack; this is the
// chosen concrete resolution of spec.md's open question, kept as
// configuration (LevelConfig.SpecialTiles) rather than a hidden constant.
func defaultSpecialTiles() map[board.Position]board.Team {
	return map[board.Position]board.Team{
		{Row: 3, Col: 1}:  board.LEFT,
		{Row: 11, Col: 1}: board.LEFT,
		{Row: 3, Col: 9}:  board.RIGHT,
		{Row: 11, Col: 9}: board.RIGHT,
	}
}

// NewLevelConfig builds the configuration for a rule level, or an error
// wrapping ErrInvalidLevel for an out-of-range level.
func NewLevelConfig(level int) (*LevelConfig, error) {
	switch level {
	case 1:
		return &LevelConfig{Level: 1, FieldPlayersPerTeam: 1, HasGoalkeeper: false, PassCap: 1}, nil
	case 2:
		return &LevelConfig{Level: 2, FieldPlayersPerTeam: 2, HasGoalkeeper: false, PassCap: 2}, nil
	case 3:
		return &LevelConfig{
			Level:               3,
			FieldPlayersPerTeam: 4,
			HasGoalkeeper:       true,
			PassCap:             3,
			SpecialTiles:        defaultSpecialTiles(),
		}, nil
	default:
		return nil, errors.Wrap(ErrInvalidLevel, fmt.Sprintf("level %d", level))
	}
}

// InGoalArea reports whether p lies in the goal mouth that attackingTeam is
// shooting at.
func InGoalArea(p board.Position, attackingTeam board.Team) bool {
	if p.Row != board.AttackRow(attackingTeam) {
		return false
	}
	for _, c := range goalCols {
		if p.Col == c {
			return true
		}
	}
	return false
}

// InPenaltyArea reports whether p lies in team's own penalty area (only
// meaningful at level 3, where goalkeepers exist).
func InPenaltyArea(p board.Position, team board.Team) bool {
	var rows [3]int
	if team == board.LEFT {
		rows = [3]int{0, 1, 2}
	} else {
		rows = [3]int{board.Rows - 3, board.Rows - 2, board.Rows - 1}
	}
	if p.Row < rows[0] || p.Row > rows[2] {
		return false
	}
	return p.Col >= 2 && p.Col <= 8
}

// ZoneIndex returns the (row-band, col-band) coordinate of the 3x3 zone
// grid cell containing p: rows split into three even 5-row bands, columns
// split 4/3/4. Shared by the territorial heuristic and the minimax
// evaluator's zone-control feature so both partition the board
// identically.
func ZoneIndex(p board.Position) (int, int) {
	zr := p.Row / 5
	var zc int
	switch {
	case p.Col <= 3:
		zc = 0
	case p.Col <= 6:
		zc = 1
	default:
		zc = 2
	}
	return zr, zc
}

// openingSlot places one player at an opening position.
type openingSlot struct {
	Position     board.Position
	IsGoalkeeper bool
}

// canonicalOpening returns the LEFT/RIGHT opening slots and the ball's
// opening cell for a level. Positions are grounded on SPEC_FULL.md §4: the
// level-1 and level-2 LEFT roster both include (4,5) so the MCTS opening
// book's (4,5)->(6,5) opener stays legal at both levels, and level 3's two
// book candidates (4,3)/(4,7) are both present.
func canonicalOpening(level int) (left, right []openingSlot, ball board.Position) {
	ball = board.Position{Row: 7, Col: 5}
	switch level {
	case 1:
		left = []openingSlot{{Position: board.Position{Row: 4, Col: 5}}}
		right = []openingSlot{{Position: board.Position{Row: 10, Col: 5}}}
	case 2:
		left = []openingSlot{
			{Position: board.Position{Row: 4, Col: 5}},
			{Position: board.Position{Row: 2, Col: 3}},
		}
		right = []openingSlot{
			{Position: board.Position{Row: 10, Col: 5}},
			{Position: board.Position{Row: 12, Col: 7}},
		}
	case 3:
		left = []openingSlot{
			{Position: board.Position{Row: 4, Col: 3}},
			{Position: board.Position{Row: 4, Col: 7}},
			{Position: board.Position{Row: 6, Col: 1}},
			{Position: board.Position{Row: 6, Col: 9}},
			{Position: board.Position{Row: 1, Col: 5}, IsGoalkeeper: true},
		}
		right = []openingSlot{
			{Position: board.Position{Row: 10, Col: 7}},
			{Position: board.Position{Row: 10, Col: 3}},
			{Position: board.Position{Row: 8, Col: 9}},
			{Position: board.Position{Row: 8, Col: 1}},
			{Position: board.Position{Row: 13, Col: 5}, IsGoalkeeper: true},
		}
	}
	return left, right, ball
}
