package board_test

import (
	"testing"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/stretchr/testify/assert"
)

func TestChebyshevDistance(t *testing.T) {
	a := board.Position{Row: 4, Col: 5}
	b := board.Position{Row: 6, Col: 5}
	assert.Equal(t, 2, a.ChebyshevDistance(b))

	c := board.Position{Row: 4, Col: 3}
	assert.Equal(t, 2, a.ChebyshevDistance(c))
}

func TestIsAdjacent(t *testing.T) {
	a := board.Position{Row: 7, Col: 5}
	assert.True(t, a.IsAdjacent(board.Position{Row: 8, Col: 6}))
	assert.False(t, a.IsAdjacent(board.Position{Row: 9, Col: 5}))
	assert.False(t, a.IsAdjacent(a))
}

func TestAdjacentClippedToBoard(t *testing.T) {
	corner := board.Position{Row: 0, Col: 0}
	neighbors := corner.Adjacent()
	assert.Len(t, neighbors, 3)
	for _, n := range neighbors {
		assert.True(t, n.InBounds())
	}
}

func TestMidpoint(t *testing.T) {
	p := board.Position{Row: 4, Col: 5}
	mid, ok := p.Midpoint(board.Position{Row: 6, Col: 5})
	assert.True(t, ok)
	assert.Equal(t, board.Position{Row: 5, Col: 5}, mid)

	_, ok = p.Midpoint(board.Position{Row: 5, Col: 5})
	assert.False(t, ok)
}

func TestOpponentAndAttackRow(t *testing.T) {
	assert.Equal(t, board.RIGHT, board.LEFT.Opponent())
	assert.Equal(t, board.Rows-1, board.AttackRow(board.LEFT))
	assert.Equal(t, 0, board.AttackRow(board.RIGHT))
}
