package rules

import "github.com/amparooliver/mastergoal-engine/board"

// PlayerSnapshot is one roster row of a Snapshot, matching spec.md §6's
// "(team, id, row, col, is_goalkeeper)" tuple.
type PlayerSnapshot struct {
	Team         board.Team
	ID           int
	Row, Col     int
	IsGoalkeeper bool
}

// Snapshot is the serializable record described in spec.md §6.
type Snapshot struct {
	Level        int
	CurrentTeam  board.Team
	LeftGoals    int
	RightGoals   int
	BallRow      int
	BallCol      int
	Players      []PlayerSnapshot
	PassesCount  int
	TurnCount    int
	SkipNextTurn bool
	Rows, Cols   int
}

// TakeSnapshot builds a Snapshot of state. It never aliases state's own
// slices, so mutating the snapshot cannot affect state.
func TakeSnapshot(s *GameState) Snapshot {
	players := make([]PlayerSnapshot, len(s.Players))
	for i, p := range s.Players {
		players[i] = PlayerSnapshot{
			Team:         p.Team,
			ID:           p.ID,
			Row:          p.Position.Row,
			Col:          p.Position.Col,
			IsGoalkeeper: p.IsGoalkeeper,
		}
	}
	return Snapshot{
		Level:        s.Level,
		CurrentTeam:  s.CurrentTeam,
		LeftGoals:    s.LeftGoals,
		RightGoals:   s.RightGoals,
		BallRow:      s.Ball.Position.Row,
		BallCol:      s.Ball.Position.Col,
		Players:      players,
		PassesCount:  s.PassesCount,
		TurnCount:    s.TurnCount,
		SkipNextTurn: s.SkipNextTurn,
		Rows:         board.Rows,
		Cols:         board.Cols,
	}
}

// Restore reconstructs a GameState from a Snapshot, for the round-trip
// law of spec.md §8 ("snapshot(S) then reconstruct → state equal to S on
// all observable fields"). LastPossessionTeam is not part of the public
// snapshot schema (spec.md §6 omits it); callers that need exact
// round-trip equality on that field should compare via the lower-level
// Clone instead of a snapshot round trip.
func Restore(snap Snapshot) (*GameState, error) {
	cfg, err := NewLevelConfig(snap.Level)
	if err != nil {
		return nil, err
	}
	players := make([]Player, len(snap.Players))
	for i, ps := range snap.Players {
		players[i] = Player{
			Team:         ps.Team,
			ID:           ps.ID,
			Position:     board.Position{Row: ps.Row, Col: ps.Col},
			IsGoalkeeper: ps.IsGoalkeeper,
		}
	}
	return &GameState{
		Level:              snap.Level,
		cfg:                cfg,
		CurrentTeam:        snap.CurrentTeam,
		LastPossessionTeam: snap.CurrentTeam,
		LeftGoals:          snap.LeftGoals,
		RightGoals:         snap.RightGoals,
		PassesCount:        snap.PassesCount,
		TurnCount:          snap.TurnCount,
		SkipNextTurn:       snap.SkipNextTurn,
		Players:            players,
		Ball:               Ball{Position: board.Position{Row: snap.BallRow, Col: snap.BallCol}},
	}, nil
}
