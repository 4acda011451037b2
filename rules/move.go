package rules

import (
	"fmt"

	"github.com/amparooliver/mastergoal-engine/board"
)

// Kind distinguishes the two action shapes the generator produces.
type Kind int

const (
	Move Kind = iota
	Kick
)

func (k Kind) String() string {
	if k == Kick {
		return "KICK"
	}
	return "MOVE"
}

// MoveAction is the (kind, from, to) triple of spec.md §4.C. From is a
// player's cell for MOVE, or the ball's cell for KICK.
type MoveAction struct {
	Kind Kind
	From board.Position
	To   board.Position
}

func (m MoveAction) String() string {
	return fmt.Sprintf("%s %s->%s", m.Kind, m.From, m.To)
}

// Less orders actions MOVE before KICK, then by (from.row, from.col,
// to.row, to.col). LegalMoves does not sort by it: its MOVE actions are
// grouped by player in roster order, not by from cell.
func (m MoveAction) Less(other MoveAction) bool {
	if m.Kind != other.Kind {
		return m.Kind < other.Kind
	}
	if m.From != other.From {
		return lessPosition(m.From, other.From)
	}
	return lessPosition(m.To, other.To)
}

func lessPosition(a, b board.Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
