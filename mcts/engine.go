package mcts

import (
	"context"
	"math/rand"
	"time"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/config"
	"github.com/amparooliver/mastergoal-engine/rules"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Engine is the root-parallel MCTS agent of spec.md §4.H: ThreadCount
// workers each grow an independent tree from a clone of the current
// state; their root children are merged by move, and a configurable
// final-move strategy resolves the merged root to one action.
//
// There is no explicit Shutdown method: every worker's goroutine and
// thread-local history table is scoped to a single Choose call via
// errgroup.Group and is gone by the time Choose returns, so nothing
// outlives one move the way the Python original's persisted
// ThreadPoolExecutor and cleanup() call needed to guard against.
type Engine struct {
	cfg  config.MCTS
	side board.Team
	seed int64
}

// NewEngine builds an Engine from cfg. seed drives every worker's RNG
// deterministically: worker i uses seed+int64(i), so a fixed seed and
// ThreadCount 1 reproduce the exact same search and move across runs
// (spec.md §8 S5).
func NewEngine(cfg config.MCTS, seed int64) *Engine {
	return &Engine{cfg: cfg, seed: seed}
}

func (e *Engine) OnGameStart(side board.Team) { e.side = side }
func (e *Engine) OnGameEnd()                  {}

// Choose runs the opening book, then a root-parallel (or, at
// ThreadCount 1, single-threaded) search, and resolves the result via
// the configured final-move strategy.
func (e *Engine) Choose(ctx context.Context, state *rules.GameState, deadline time.Time) (rules.MoveAction, error) {
	moves := rules.LegalMoves(state)
	if len(moves) == 0 {
		return rules.MoveAction{}, agent.New(agent.KindInvalidInput, "no legal moves available")
	}

	if e.cfg.OpeningBookEnabled {
		if move, ok := openingBookMove(state, e.side, e.seed); ok {
			return move, nil
		}
	}

	threads := e.cfg.ThreadCount
	if threads < 1 {
		threads = 1
	}

	var roots []*Node
	if threads == 1 {
		roots = []*Node{e.runWorker(ctx, state, e.cfg.Iterations, e.seed, deadline)}
	} else {
		parallelRoots, err := e.runParallel(ctx, state, threads, deadline)
		if err != nil {
			log.Warn().Err(err).Msg("mcts-worker-pool-start-failed-falling-back-to-sequential")
			roots = []*Node{e.runWorker(ctx, state, e.cfg.Iterations, e.seed, deadline)}
		} else {
			roots = parallelRoots
		}
	}

	merged := mergeRoots(state, roots)
	if len(merged.Children) == 0 {
		rng := rand.New(rand.NewSource(e.seed))
		return moves[rng.Intn(len(moves))], nil
	}

	if move, ok := e.finalMoveSelector().SelectMove(merged); ok {
		return move, nil
	}
	return moves[0], nil
}

// runParallel launches threads independent workers over a
// gctx-scoped errgroup, matching mcts_AI.py's ThreadPoolExecutor fan-
// out: iterations is split as evenly as possible across workers.
func (e *Engine) runParallel(ctx context.Context, state *rules.GameState, threads int, deadline time.Time) ([]*Node, error) {
	g, gctx := errgroup.WithContext(ctx)
	roots := make([]*Node, threads)
	base := e.cfg.Iterations / threads
	extra := e.cfg.Iterations % threads

	for i := 0; i < threads; i++ {
		i := i
		iterations := base
		if i < extra {
			iterations++
		}
		g.Go(func() error {
			roots[i] = e.runWorker(gctx, state, iterations, e.seed+int64(i), deadline)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return roots, nil
}

// runWorker grows one tree from a fresh clone of state, using its own
// RNG and (if the selection strategy needs one) its own thread-local
// history table, for exactly iterations select/expand/simulate/
// backpropagate rounds or until ctx is cancelled or deadline passes.
func (e *Engine) runWorker(ctx context.Context, state *rules.GameState, iterations int, seed int64, deadline time.Time) *Node {
	rng := rand.New(rand.NewSource(seed))
	root := NewNode(state.Clone(), nil, rules.MoveAction{}, false)

	selection := e.newSelector()
	var history *ProgressiveHistory
	if ph, ok := selection.(*ProgressiveHistory); ok {
		history = ph
	}
	expansion := RandomExpansion{}
	simulation := RandomPlayout{AITeam: e.side}
	backprop := StandardBackpropagation{History: history}

	for i := 0; i < iterations; i++ {
		if ctx.Err() != nil {
			log.Debug().Int("completed_iterations", i).Msg("mcts-worker-context-cancelled")
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			log.Debug().Int("completed_iterations", i).Msg("mcts-worker-deadline-exceeded")
			break
		}
		leaf := e.descend(root, selection, expansion, rng)
		reward := simulation.Simulate(leaf, rng, e.cfg.PlayoutCap)
		backprop.Backpropagate(leaf, reward)
	}
	return root
}

// descend is the select/expand half of one MCTS iteration: follow the
// tree policy through fully-expanded nodes, then expand the first node
// that still has an untried move.
func (e *Engine) descend(root *Node, selection Selector, expansion Expander, rng *rand.Rand) *Node {
	node := root
	for !node.IsTerminal() {
		if !node.IsFullyExpanded() {
			return expansion.Expand(node, rng)
		}
		if len(node.Children) == 0 {
			return node
		}
		node = selection.Select(node)
	}
	return node
}

func (e *Engine) newSelector() Selector {
	switch e.cfg.SelectionStrategy {
	case "progressive_bias":
		return ProgressiveBias{UCT: UCT{Exploration: e.cfg.Exploration}, HeuristicValue: e.cfg.HeuristicBias}
	case "progressive_history":
		return NewProgressiveHistory(e.cfg.Exploration)
	default:
		return UCT{Exploration: e.cfg.Exploration}
	}
}

func (e *Engine) finalMoveSelector() FinalMoveSelector {
	switch e.cfg.FinalMoveStrategy {
	case "max_child":
		return MaxChild{}
	case "robust_max_child":
		pct := e.cfg.RobustMaxPercentage
		if pct <= 0 {
			pct = 0.3
		}
		return RobustMaxChild{TopPercentage: pct}
	case "decisive":
		return DecisiveMove{Fallback: RobustChild{}}
	default:
		return RobustChild{}
	}
}

// mergeRoots sums visits and total_reward of matching root children
// across every worker's tree, without merging anything below the root
// — grounded on mcts_AI.py's _merge_trees, which only ever touches
// root.children.
func mergeRoots(state *rules.GameState, roots []*Node) *Node {
	merged := NewNode(state.Clone(), nil, rules.MoveAction{}, false)
	byMove := make(map[rules.MoveAction]*Node)

	for _, root := range roots {
		if root == nil {
			continue
		}
		for _, child := range root.Children {
			mc, ok := byMove[child.Move]
			if !ok {
				mc = NewNode(child.State.Clone(), merged, child.Move, true)
				byMove[child.Move] = mc
				merged.Children = append(merged.Children, mc)
			}
			mc.Visits += child.Visits
			mc.TotalReward += child.TotalReward
		}
	}
	return merged
}
