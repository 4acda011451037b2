// Package mcts implements the root-parallel Monte Carlo tree search
// engine of spec.md §4.H: a tree of cloned game states explored through
// pluggable selection/expansion/simulation/backpropagation strategies,
// searched by several independent worker trees whose root children are
// merged by summing visits and reward, then resolved to one move by a
// configurable final-move strategy. Grounded on
// original_source/backend/tournament_system/mcts_node.py's node shape
// and mcts_AI.py's root-parallel coordinator, with the node/search
// skeleton itself carried forward from the teacher's own mcts/mcts.go.
package mcts

import (
	"math"

	"github.com/amparooliver/mastergoal-engine/rules"
)

// Node is one vertex of a search tree: a cloned game state reached by
// Move from Parent, plus the running visit/reward statistics every
// selection and final-move strategy reads. The root node has no move
// and HasMove is false, matching mcts_node.py's MCTSNode(move=None).
type Node struct {
	State       *rules.GameState
	Parent      *Node
	Move        rules.MoveAction
	HasMove     bool
	Children    []*Node
	Visits      int
	TotalReward float64

	untried []rules.MoveAction
}

// NewNode builds a node over state, computing its untried-move frontier
// once at construction time so IsFullyExpanded stays an O(1) length
// check, mirroring mcts_node.py's is_fully_expanded comparing
// len(children) against len(get_legal_moves()).
func NewNode(state *rules.GameState, parent *Node, move rules.MoveAction, hasMove bool) *Node {
	return &Node{
		State:   state,
		Parent:  parent,
		Move:    move,
		HasMove: hasMove,
		untried: rules.LegalMoves(state),
	}
}

// IsFullyExpanded reports whether every legal move out of this node
// already has a child.
func (n *Node) IsFullyExpanded() bool {
	return len(n.untried) == 0
}

// IsTerminal reports whether the node's state ends the game under the
// engine's default win-goals/max-turns rules.
func (n *Node) IsTerminal() bool {
	ended, _ := rules.IsGameOver(n.State, rules.TerminalOptions{})
	return ended
}

// MeanReward is total_reward/visits, or -infinity for an unvisited node
// so it never wins a max-comparison against any visited sibling.
func (n *Node) MeanReward() float64 {
	if n.Visits == 0 {
		return math.Inf(-1)
	}
	return n.TotalReward / float64(n.Visits)
}
