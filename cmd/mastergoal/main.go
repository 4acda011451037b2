// Command mastergoal is the terminal entrypoint: parse flags, load
// configuration, and run one interactive human-vs-agent session.
// Grounded on the teacher's own main.go (flag-parsed side/time-per-move
// options feeding a constructed Game) and game/game.go (the Game
// struct's state/agent/side fields and its print-check-dispatch Run
// loop), generalized from Connect6's fixed MCTS opponent to any of the
// four agent kinds spec.md §4.E names.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/config"
	"github.com/amparooliver/mastergoal-engine/heuristic"
	"github.com/amparooliver/mastergoal-engine/mcts"
	"github.com/amparooliver/mastergoal-engine/minimax"
	"github.com/amparooliver/mastergoal-engine/rules"
	"github.com/amparooliver/mastergoal-engine/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath string
	levelFlag  int
)

func init() {
	flag.StringVar(&configPath, "config", "", "path to a config file overriding the agent's defaults")
	flag.IntVar(&levelFlag, "level", 2, "rule level: 1, 2, or 3")
}

func main() {
	flag.Parse()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	state, err := rules.NewGame(levelFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("starting game")
	}

	reader := bufio.NewReader(os.Stdin)
	humanSide := ui.ShowGameMenu(os.Stdout, reader)

	ai, err := buildAgent(cfg.Agent)
	if err != nil {
		log.Fatal().Err(err).Msg("building agent")
	}
	ai.OnGameStart(humanSide.Opponent())
	defer ai.OnGameEnd()

	g := &Game{
		state:       state,
		ai:          ai,
		humanSide:   humanSide,
		moveTimeout: cfg.Environment.AIMoveTimeout,
		reader:      reader,
		out:         os.Stdout,
	}
	g.Run()
}

// Game holds one interactive session: the live state, the AI opponent,
// which side the human plays, and the I/O streams it reads and writes
// through. Grounded on the teacher's own game/game.go Game struct.
type Game struct {
	state       *rules.GameState
	ai          agent.Agent
	humanSide   board.Team
	moveTimeout time.Duration
	reader      *bufio.Reader
	out         *os.File
}

// Run is the print-check-dispatch loop of the teacher's Game.Run,
// generalized from Connect6's two-stone-rune turn check to
// GameState.CurrentTeam and from its hardcoded MCTS botTurn to any
// agent.Agent.
func (g *Game) Run() {
	defer func() {
		if r := recover(); r != nil {
			iv, ok := r.(rules.InvariantViolation)
			if !ok {
				panic(r)
			}
			log.Error().Err(iv).Msg("aborting game")
		}
	}()
	for {
		ui.PrintBoard(g.out, g.state)

		if ended, outcome := rules.IsGameOver(g.state, rules.TerminalOptions{}); ended {
			ui.ShowResult(g.out, g.state, outcome)
			return
		}

		move, err := g.nextMove()
		if err != nil {
			log.Error().Err(err).Msg("choosing move")
			return
		}
		if _, err := rules.Execute(g.state, move); err != nil {
			log.Error().Err(err).Msg("executing move")
			return
		}
	}
}

func (g *Game) nextMove() (rules.MoveAction, error) {
	if g.state.CurrentTeam == g.humanSide {
		return ui.GetPlayerMove(g.out, g.reader, g.state)
	}
	fmt.Fprintln(g.out, "AI is thinking...")
	deadline := time.Now().Add(g.moveTimeout)
	return g.ai.Choose(context.Background(), g.state, deadline)
}

// buildAgent resolves cfg.Kind to a concrete agent.Agent, falling
// through to the configured heuristic style when Kind names none of
// the other three kinds ("random", "minimax", "mcts").
func buildAgent(cfg config.Agent) (agent.Agent, error) {
	switch cfg.Kind {
	case "random":
		return newRandomAgent(), nil
	case "minimax":
		weights, err := loadMinimaxWeights(cfg.Minimax)
		if err != nil {
			return nil, err
		}
		return minimax.NewEngine(weights, cfg.Minimax.DepthOverride), nil
	case "mcts":
		return mcts.NewEngine(cfg.MCTS, time.Now().UnixNano()), nil
	default:
		return buildHeuristicAgent(cfg.Heuristic), nil
	}
}

func buildHeuristicAgent(cfg config.Heuristic) agent.Agent {
	switch cfg.Style {
	case "advanced":
		return heuristic.NewAdvanced()
	case "territorial":
		return heuristic.NewTerritorial(heuristic.Intensity(cfg.Intensity))
	case "roles":
		return heuristic.NewRoles(heuristic.Playstyle(cfg.Playstyle))
	case "triangle":
		return heuristic.NewTriangle(heuristic.TriangleStyle(cfg.Playstyle))
	default:
		return heuristic.NewBasic(newSeededRand())
	}
}

// defaultMinimaxWeights is a flat, untuned vector used when no weights
// file is configured, so the minimax agent kind always starts rather
// than requiring a tuned artifact on disk.
var defaultMinimaxWeights = []float64{1000, 5, 10, 3, 2, -1, 4, 50}

const defaultMinimaxDepth = 3

func loadMinimaxWeights(cfg config.Minimax) (*minimax.Weights, error) {
	if cfg.WeightsPath == "" {
		depth := cfg.DepthOverride
		if depth == 0 {
			depth = defaultMinimaxDepth
		}
		return &minimax.Weights{Values: defaultMinimaxWeights, Depth: depth}, nil
	}
	return minimax.LoadWeightsFile(cfg.WeightsPath, minimax.ExpectedFeatureLength)
}

type stdRand struct{ r *rand.Rand }

func (s stdRand) Intn(n int) int   { return s.r.Intn(n) }
func (s stdRand) Float64() float64 { return s.r.Float64() }

func newSeededRand() stdRand {
	return stdRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// randomAgent always falls back to a uniformly random legal move,
// satisfying the "random" kind named in config.Agent.Kind's comment.
type randomAgent struct {
	rng stdRand
}

func newRandomAgent() agent.Agent { return &randomAgent{rng: newSeededRand()} }

func (r *randomAgent) OnGameStart(board.Team) {}
func (r *randomAgent) OnGameEnd()             {}

func (r *randomAgent) Choose(_ context.Context, s *rules.GameState, _ time.Time) (rules.MoveAction, error) {
	move, ok := agent.RandomFallback(s, r.rng)
	if !ok {
		return rules.MoveAction{}, agent.New(agent.KindInvalidInput, "no legal moves available")
	}
	return move, nil
}
