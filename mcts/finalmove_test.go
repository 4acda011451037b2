package mcts_test

import (
	"testing"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/mcts"
	"github.com/amparooliver/mastergoal-engine/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRoot assembles a root with one child per raw (visits,
// total_reward) pair, without running any search — final-move
// selectors only ever read a root's children.
func buildRoot(t *testing.T, stats [][2]float64) *mcts.Node {
	t.Helper()
	s, err := rules.NewGame(1)
	require.NoError(t, err)
	root := mcts.NewNode(s, nil, rules.MoveAction{}, false)

	moves := rules.LegalMoves(s)
	require.GreaterOrEqual(t, len(moves), len(stats))

	for i, st := range stats {
		child := mcts.NewNode(s.Clone(), root, moves[i], true)
		child.Visits = int(st[0])
		child.TotalReward = st[1]
		root.Children = append(root.Children, child)
	}
	return root
}

// TestFinalMoveSelectorsDiverge is spec.md §8's S6 scenario verbatim:
// child A (visits=50, reward=10) has mean 0.2, child B (visits=40,
// reward=30) has mean 0.75. Robust-child picks the more-visited A,
// max-child picks the higher-mean B, and robust-max at a 50% top slice
// also lands on B, since B is the sole occupant of that slice.
func TestFinalMoveSelectorsDiverge(t *testing.T) {
	root := buildRoot(t, [][2]float64{{50, 10}, {40, 30}})
	moveA, moveB := root.Children[0].Move, root.Children[1].Move

	robust, ok := mcts.RobustChild{}.SelectMove(root)
	require.True(t, ok)
	assert.Equal(t, moveA, robust)

	max, ok := mcts.MaxChild{}.SelectMove(root)
	require.True(t, ok)
	assert.Equal(t, moveB, max)

	robustMax, ok := mcts.RobustMaxChild{TopPercentage: 0.5}.SelectMove(root)
	require.True(t, ok)
	assert.Equal(t, moveB, robustMax)
}

func TestRobustMaxChildFallsBackToSingleCandidate(t *testing.T) {
	root := buildRoot(t, [][2]float64{{10, 1}})
	move, ok := mcts.RobustMaxChild{TopPercentage: 0.3}.SelectMove(root)
	require.True(t, ok)
	assert.Equal(t, root.Children[0].Move, move)
}

func TestFinalMoveSelectorsReturnFalseWithoutChildren(t *testing.T) {
	s, err := rules.NewGame(1)
	require.NoError(t, err)
	root := mcts.NewNode(s, nil, rules.MoveAction{}, false)

	_, ok := mcts.RobustChild{}.SelectMove(root)
	assert.False(t, ok)
	_, ok = mcts.MaxChild{}.SelectMove(root)
	assert.False(t, ok)
	_, ok = mcts.RobustMaxChild{TopPercentage: 0.3}.SelectMove(root)
	assert.False(t, ok)
}

func TestDecisiveMoveFallsBackWithoutAGoalKick(t *testing.T) {
	s, err := rules.NewGame(1)
	require.NoError(t, err)
	root := mcts.NewNode(s, nil, rules.MoveAction{}, false)

	ordinary := mcts.NewNode(s.Clone(), root, rules.LegalMoves(s)[0], true)
	ordinary.Visits, ordinary.TotalReward = 100, 90
	root.Children = append(root.Children, ordinary)

	move, ok := mcts.DecisiveMove{Fallback: mcts.MaxChild{}}.SelectMove(root)
	require.True(t, ok)
	assert.Equal(t, ordinary.Move, move, "falls back to the wrapped strategy when no child is a goal-scoring kick")
}

func TestDecisiveMovePrefersGoalKickOverFallback(t *testing.T) {
	s, err := rules.NewGame(1)
	require.NoError(t, err)
	s.CurrentTeam = board.LEFT
	s.Players = []rules.Player{
		{Team: board.LEFT, ID: 0, Position: board.Position{Row: 13, Col: 5}},
		{Team: board.RIGHT, ID: 1, Position: board.Position{Row: 1, Col: 1}},
	}
	s.Ball.Position = board.Position{Row: 13, Col: 5}

	root := mcts.NewNode(s, nil, rules.MoveAction{}, false)
	var goalKick rules.MoveAction
	for _, m := range rules.LegalMoves(s) {
		if m.Kind == rules.Kick && rules.InGoalArea(m.To, board.LEFT) {
			goalKick = m
			break
		}
	}
	require.NotZero(t, goalKick, "fixture must offer a legal goal-scoring kick")

	scorer := mcts.NewNode(s.Clone(), root, goalKick, true)
	scorer.Visits, scorer.TotalReward = 1, 0.1

	decoy := mcts.NewNode(s.Clone(), root, rules.LegalMoves(s)[0], true)
	decoy.Visits, decoy.TotalReward = 1000, 999

	root.Children = append(root.Children, decoy, scorer)

	move, ok := mcts.DecisiveMove{Fallback: mcts.MaxChild{}}.SelectMove(root)
	require.True(t, ok)
	assert.Equal(t, goalKick, move)
}
