package mcts

import (
	"math"
	"math/rand"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/rules"
)

// Selector descends a fully-expanded node by picking one of its
// children, the tree-policy half of the search loop.
type Selector interface {
	Select(node *Node) *Node
}

// UCT is the classic exploit/explore split, grounded on
// strategies/selection.py's UCTSelection. An unvisited child always
// wins so every child gets sampled once before any exploitation.
type UCT struct {
	Exploration float64
}

func (u UCT) Select(node *Node) *Node {
	return bestBy(node.Children, func(c *Node) float64 { return u.score(c, node) })
}

func (u UCT) score(node, parent *Node) float64 {
	if node.Visits == 0 {
		return math.Inf(1)
	}
	exploit := node.TotalReward / float64(node.Visits)
	explore := u.Exploration * math.Sqrt(math.Log(float64(parent.Visits)+1e-9)/float64(node.Visits))
	return exploit + explore
}

// bestBy returns the child maximizing score, first occurrence winning
// ties, matching every strategy file's plain left-to-right argmax loop.
func bestBy(children []*Node, score func(*Node) float64) *Node {
	best := children[0]
	bestScore := score(best)
	for _, c := range children[1:] {
		if s := score(c); s > bestScore {
			bestScore = s
			best = c
		}
	}
	return best
}

// ProgressiveBias adds a decaying heuristic term to UCT's score:
// heuristicValue/(visits+1), where the heuristic rewards a node whose
// side to move already has a player adjacent to a carried (non-neutral)
// ball — grounded on selection.py's ProgressiveBiasSelection.
type ProgressiveBias struct {
	UCT
	HeuristicValue float64
}

func (p ProgressiveBias) Select(node *Node) *Node {
	return bestBy(node.Children, func(c *Node) float64 {
		if c.Visits == 0 {
			return math.Inf(1)
		}
		return p.UCT.score(c, node) + p.heuristic(c)/(float64(c.Visits)+1)
	})
}

func (p ProgressiveBias) heuristic(node *Node) float64 {
	if _, carried := node.State.BallCarrier(); !carried {
		return 0
	}
	ball := node.State.Ball.Position
	for _, pl := range node.State.PlayersOf(node.State.CurrentTeam) {
		if pl.Position.IsAdjacent(ball) {
			return p.HeuristicValue
		}
	}
	return 0
}

// historyKey identifies one (team, move) pair in a progressive-history
// table, mirroring selection.py's defaultdict(lambda: [0.0, 0]) keyed by
// (team, node.move).
type historyKey struct {
	team board.Team
	move rules.MoveAction
}

type historyEntry struct {
	totalReward float64
	count       int
}

// ProgressiveHistory adds the historical mean reward of (team, move)
// pairs seen anywhere else in this worker's tree to UCT's score,
// grounded on selection.py's ProgressiveHistorySelection. The table is
// thread-local by construction: each search worker builds its own.
type ProgressiveHistory struct {
	UCT
	table map[historyKey]*historyEntry
}

// NewProgressiveHistory builds an empty history table.
func NewProgressiveHistory(exploration float64) *ProgressiveHistory {
	return &ProgressiveHistory{UCT: UCT{Exploration: exploration}, table: make(map[historyKey]*historyEntry)}
}

func (p *ProgressiveHistory) Select(node *Node) *Node {
	return bestBy(node.Children, func(c *Node) float64 {
		if c.Visits == 0 {
			return math.Inf(1)
		}
		return p.UCT.score(c, node) + p.historyBias(c)
	})
}

func (p *ProgressiveHistory) historyBias(node *Node) float64 {
	entry, ok := p.table[historyKey{team: node.State.CurrentTeam, move: node.Move}]
	if !ok || entry.count == 0 {
		return 0
	}
	return entry.totalReward / float64(entry.count)
}

// UpdateHistory records reward against node's (team, move) pair. Called
// once per rollout, on the leaf-side node only (see Backpropagate),
// matching backpropagation.py's is_first flag.
func (p *ProgressiveHistory) UpdateHistory(node *Node, reward float64) {
	if !node.HasMove {
		return
	}
	key := historyKey{team: node.State.CurrentTeam, move: node.Move}
	entry, ok := p.table[key]
	if !ok {
		entry = &historyEntry{}
		p.table[key] = entry
	}
	entry.totalReward += reward
	entry.count++
}

// Expander grows the tree by attaching one new child to a
// not-fully-expanded node.
type Expander interface {
	Expand(node *Node, rng *rand.Rand) *Node
}

// RandomExpansion picks a uniformly random untried move, clones and
// executes it, and attaches the resulting state as a new child —
// grounded on expansion.py's RandomExpansion.
type RandomExpansion struct{}

func (RandomExpansion) Expand(node *Node, rng *rand.Rand) *Node {
	if len(node.untried) == 0 {
		if len(node.Children) == 0 {
			return node
		}
		return node.Children[rng.Intn(len(node.Children))]
	}
	idx := rng.Intn(len(node.untried))
	move := node.untried[idx]
	node.untried[idx] = node.untried[len(node.untried)-1]
	node.untried = node.untried[:len(node.untried)-1]

	clone := node.State.Clone()
	if _, err := rules.Execute(clone, move); err != nil {
		return RandomExpansion{}.Expand(node, rng)
	}
	child := NewNode(clone, node, move, true)
	node.Children = append(node.Children, child)
	return child
}

// Simulator plays a node's state to a terminal or capped position and
// reports the reward from aiTeam's perspective.
type Simulator interface {
	Simulate(node *Node, rng *rand.Rand, playoutCap int) float64
}

// RandomPlayout plays uniformly random legal moves until the game ends
// or playoutCap plies pass, then scores +1/-1/0 for an aiTeam
// win/loss/draw-or-cap — grounded on simulation.py's RandomPlayout. It
// deliberately does NOT alternate sign per ply: the reward is always
// relative to the same fixed aiTeam, matching calculate_reward.
type RandomPlayout struct {
	AITeam board.Team
}

func (r RandomPlayout) Simulate(node *Node, rng *rand.Rand, playoutCap int) float64 {
	state := node.State.Clone()
	for plies := 0; ; plies++ {
		if ended, winner := rules.IsGameOver(state, rules.TerminalOptions{}); ended {
			return r.reward(winner)
		}
		if playoutCap > 0 && plies >= playoutCap {
			return 0
		}
		moves := rules.LegalMoves(state)
		if len(moves) == 0 {
			return 0
		}
		if _, err := rules.Execute(state, moves[rng.Intn(len(moves))]); err != nil {
			return 0
		}
	}
}

func (r RandomPlayout) reward(winner rules.Outcome) float64 {
	switch winner {
	case rules.LeftWins:
		if r.AITeam == board.LEFT {
			return 1.0
		}
		return -1.0
	case rules.RightWins:
		if r.AITeam == board.RIGHT {
			return 1.0
		}
		return -1.0
	default:
		return 0.0
	}
}

// Backpropagator walks a rollout's result back up the tree.
type Backpropagator interface {
	Backpropagate(node *Node, reward float64)
}

// StandardBackpropagation applies the same reward value to every
// ancestor's visits/total_reward, with no per-level sign flip —
// grounded on backpropagation.py's StandardBackpropagation, and the one
// place the teacher's own Connect6 backup (which alternates
// result = 1 - result per ancestor) is deliberately not followed, since
// Mastergoal's reward is always relative to one fixed AI team rather
// than to whichever side is "to move" at each node. History is an
// optional history.py is_first update, matching backpropagation.py.
type StandardBackpropagation struct {
	History *ProgressiveHistory
}

func (b StandardBackpropagation) Backpropagate(node *Node, reward float64) {
	first := true
	for n := node; n != nil; n = n.Parent {
		n.Visits++
		n.TotalReward += reward
		if first && b.History != nil {
			b.History.UpdateHistory(n, reward)
			first = false
		}
	}
}
