package mcts

import (
	"sort"

	"github.com/amparooliver/mastergoal-engine/rules"
)

// FinalMoveSelector resolves a searched (and, for the root-parallel
// engine, merged) root to the single move the agent actually plays.
type FinalMoveSelector interface {
	SelectMove(root *Node) (rules.MoveAction, bool)
}

// MaxChild picks the child with the highest mean reward, ignoring visit
// counts entirely — grounded on final_move.py's MaxChildStrategy.
type MaxChild struct{}

func (MaxChild) SelectMove(root *Node) (rules.MoveAction, bool) {
	if len(root.Children) == 0 {
		return rules.MoveAction{}, false
	}
	best := bestBy(root.Children, (*Node).MeanReward)
	return best.Move, true
}

// RobustChild picks the most-visited child, ignoring reward entirely —
// grounded on final_move.py's RobustChildStrategy. This is the
// classically recommended choice: visit count reflects how much the
// search itself came to favor a move, not just a lucky rollout.
type RobustChild struct{}

func (RobustChild) SelectMove(root *Node) (rules.MoveAction, bool) {
	if len(root.Children) == 0 {
		return rules.MoveAction{}, false
	}
	best := bestBy(root.Children, func(n *Node) float64 { return float64(n.Visits) })
	return best.Move, true
}

// RobustMaxChild restricts the field to the TopPercentage of children
// ranked by mean reward (at least one), then picks the most-visited
// among them — grounded on final_move.py's RobustMaxChildStrategy.
type RobustMaxChild struct {
	TopPercentage float64
}

func (r RobustMaxChild) SelectMove(root *Node) (rules.MoveAction, bool) {
	var candidates []*Node
	for _, c := range root.Children {
		if c.Visits > 0 {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return rules.MoveAction{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].MeanReward() > candidates[j].MeanReward()
	})
	topCount := int(float64(len(candidates)) * r.TopPercentage)
	if topCount < 1 {
		topCount = 1
	}
	best := bestBy(candidates[:topCount], func(n *Node) float64 { return float64(n.Visits) })
	return best.Move, true
}

// DecisiveMove short-circuits to any root child whose move is a direct
// goal-scoring kick, before falling back to Fallback — grounded on
// final_move.py's DecisiveMoveStrategy. Fallback defaults to MaxChild
// if left nil, matching enable_decisive's default fallback_strategy.
type DecisiveMove struct {
	Fallback FinalMoveSelector
}

func (d DecisiveMove) SelectMove(root *Node) (rules.MoveAction, bool) {
	for _, c := range root.Children {
		if c.Move.Kind == rules.Kick && rules.InGoalArea(c.Move.To, root.State.CurrentTeam) {
			return c.Move, true
		}
	}
	fallback := d.Fallback
	if fallback == nil {
		fallback = MaxChild{}
	}
	return fallback.SelectMove(root)
}
