package rules

import (
	"github.com/amparooliver/mastergoal-engine/board"
)

// Player is one roster member. IDs are stable for the lifetime of a game
// (they survive goal resets) so agents and tests can track a specific
// player across turns.
type Player struct {
	Team         board.Team
	ID           int
	Position     board.Position
	IsGoalkeeper bool
}

// Ball is a single cell; it is "neutral" when no player shares it.
type Ball struct {
	Position board.Position
}

// GameState is the full mutable game record described in spec.md §3. The
// executor (Execute) is its only mutator; every other package treats it as
// read-only and clones before exploring.
type GameState struct {
	Level   int
	cfg     *LevelConfig

	LeftGoals, RightGoals int
	CurrentTeam           board.Team
	LastPossessionTeam    board.Team
	PassesCount           int
	TurnCount             int

	// SkipNextTurn exists for interface parity with spec.md §3 ("flag set
	// by rules that forfeit the next move"). No rule implemented here ever
	// sets it: the one extra-turn rule in this spec (level-3 special
	// tiles) is resolved inline during kick execution by simply not
	// flipping CurrentTeam, which is simpler than deferring through a
	// flag consulted on the following move.
	SkipNextTurn bool

	Players []Player
	Ball    Ball
}

// Config returns the level configuration backing this state.
func (s *GameState) Config() *LevelConfig { return s.cfg }

// NewGame builds a fresh state for the given level: canonical opening
// positions, ball at the board's center cell (neutral), LEFT to move.
func NewGame(level int) (*GameState, error) {
	cfg, err := NewLevelConfig(level)
	if err != nil {
		return nil, err
	}

	leftSlots, rightSlots, ballPos := canonicalOpening(level)
	players := make([]Player, 0, len(leftSlots)+len(rightSlots))
	id := 0
	for _, slot := range leftSlots {
		players = append(players, Player{Team: board.LEFT, ID: id, Position: slot.Position, IsGoalkeeper: slot.IsGoalkeeper})
		id++
	}
	for _, slot := range rightSlots {
		players = append(players, Player{Team: board.RIGHT, ID: id, Position: slot.Position, IsGoalkeeper: slot.IsGoalkeeper})
		id++
	}

	s := &GameState{
		Level:               level,
		cfg:                 cfg,
		CurrentTeam:         board.LEFT,
		LastPossessionTeam:  board.LEFT,
		Players:             players,
		Ball:                Ball{Position: ballPos},
	}
	return s, nil
}

// resetToOpening restores the canonical layout for the state's level,
// preserving scores, turn count, and the level configuration. Used by the
// executor when a goal is scored (spec.md §4.D).
func (s *GameState) resetToOpening() {
	leftSlots, rightSlots, ballPos := canonicalOpening(s.Level)
	for i := range s.Players {
		var slot openingSlot
		if s.Players[i].Team == board.LEFT {
			slot = leftSlots[leftIndex(s.Players, i)]
		} else {
			slot = rightSlots[rightIndex(s.Players, i)]
		}
		s.Players[i].Position = slot.Position
	}
	s.Ball.Position = ballPos
	s.PassesCount = 0
}

// leftIndex/rightIndex recover a player's slot index within its own team's
// roster (players are stored in a single flat, team-ordered slice).
func leftIndex(players []Player, i int) int {
	idx := 0
	for j := 0; j < i; j++ {
		if players[j].Team == board.LEFT {
			idx++
		}
	}
	return idx
}

func rightIndex(players []Player, i int) int {
	idx := 0
	for j := 0; j < i; j++ {
		if players[j].Team == board.RIGHT {
			idx++
		}
	}
	return idx
}

// Clone returns a deep copy. The level configuration is shared (it is
// immutable after construction), matching the "deep-clone hot path"
// design note: flat slices, no object graph.
func (s *GameState) Clone() *GameState {
	clone := *s
	clone.Players = make([]Player, len(s.Players))
	copy(clone.Players, s.Players)
	return &clone
}

// PlayerAt returns the player occupying p, if any.
func (s *GameState) PlayerAt(p board.Position) (*Player, bool) {
	for i := range s.Players {
		if s.Players[i].Position == p {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// PlayersOf returns the roster slots belonging to team, in roster order.
func (s *GameState) PlayersOf(team board.Team) []*Player {
	out := make([]*Player, 0, len(s.Players))
	for i := range s.Players {
		if s.Players[i].Team == team {
			out = append(out, &s.Players[i])
		}
	}
	return out
}

// BallCarrier returns the player sharing the ball's cell, if any. A ball
// with no carrier is "neutral" (spec.md §3).
func (s *GameState) BallCarrier() (*Player, bool) {
	return s.PlayerAt(s.Ball.Position)
}

// checkInvariants re-validates the invariants that can be read off a
// single state after a completed executor action: players in bounds and
// on distinct cells, each team's roster size, goalkeepers inside their
// penalty area, passes_count within the level cap, and the ball in bounds.
// Turn alternation and the passes_count reset are transition properties
// and are not checked here. A violation is a programming error, not a
// recoverable condition (spec.md §7 kind 5).
func (s *GameState) checkInvariants() {
	seen := make(map[board.Position]bool, len(s.Players))
	leftCount, rightCount := 0, 0
	for _, p := range s.Players {
		if !p.Position.InBounds() {
			panicInvariant("player out of bounds: " + p.Position.String())
		}
		if seen[p.Position] {
			panicInvariant("two players share a cell: " + p.Position.String())
		}
		seen[p.Position] = true
		if p.Team == board.LEFT {
			leftCount++
		} else {
			rightCount++
		}
		if p.IsGoalkeeper && !InPenaltyArea(p.Position, p.Team) {
			panicInvariant("goalkeeper outside penalty area: " + p.Position.String())
		}
	}
	if leftCount != s.cfg.FieldPlayersPerTeam+boolToInt(s.cfg.HasGoalkeeper) {
		panicInvariant("LEFT roster size mismatch")
	}
	if rightCount != s.cfg.FieldPlayersPerTeam+boolToInt(s.cfg.HasGoalkeeper) {
		panicInvariant("RIGHT roster size mismatch")
	}
	if s.PassesCount > s.cfg.PassCap {
		panicInvariant("passes_count exceeds cap")
	}
	if !s.Ball.Position.InBounds() {
		panicInvariant("ball out of bounds: " + s.Ball.Position.String())
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
