// Package config loads the agent and search knobs of spec.md §6 through a
// single viper.Viper instance: built-in defaults, an optional config file,
// and environment variable overrides, all folding into one typed Config.
// Grounded on original_source/backend/config.py's knob set, narrowed to
// this engine's scope — the HTTP-specific knobs (SECRET_KEY,
// ALLOWED_ORIGINS) belong to the out-of-scope wrapper and are dropped.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// MCTS holds the root-parallel search knobs of spec.md §4.H/§6.
type MCTS struct {
	Iterations          int     `mapstructure:"iterations"`
	Exploration         float64 `mapstructure:"exploration"`
	ThreadCount         int     `mapstructure:"thread_count"`
	HeuristicBias       float64 `mapstructure:"heuristic_bias"`
	OpeningBookEnabled  bool    `mapstructure:"opening_book_enabled"`
	FinalMoveStrategy   string  `mapstructure:"final_move_strategy"` // "max_child" | "robust_child" | "robust_max_child" | "decisive"
	RobustMaxPercentage float64 `mapstructure:"robust_max_percentage"`
	PlayoutCap          int     `mapstructure:"playout_cap"`
	SelectionStrategy   string  `mapstructure:"selection_strategy"` // "uct" | "progressive_bias" | "progressive_history"
}

// Minimax holds the alpha-beta engine's knobs.
type Minimax struct {
	DepthOverride int    `mapstructure:"depth_override"` // 0 means "use the weights file's depth"
	WeightsPath   string `mapstructure:"weights_path"`
}

// Heuristic holds the rule-ranked agents' style knobs.
type Heuristic struct {
	Style     string `mapstructure:"style"` // "basic" | "advanced" | "territorial" | "roles" | "triangle"
	Intensity string `mapstructure:"intensity"`
	Playstyle string `mapstructure:"playstyle"` // triangle/roles substyle: "compact" | "fluid" | "wide" | "defensive" | "balanced" | "offensive"
}

// Agent holds the per-agent configuration of spec.md §6: name, level, and
// the strategy-specific hyperparameters above.
type Agent struct {
	Name      string `mapstructure:"name"`
	Level     int    `mapstructure:"level"`
	Kind      string `mapstructure:"kind"` // "random" | "heuristic" | "minimax" | "mcts"
	MCTS      MCTS
	Minimax   Minimax
	Heuristic Heuristic
}

// Environment holds the numeric thresholds of spec.md §6's "Environment
// inputs": accepted as configuration, never consulted by the core
// algorithms themselves.
type Environment struct {
	AIMoveTimeout      time.Duration `mapstructure:"ai_move_timeout"`
	GameTimeoutMinutes int           `mapstructure:"game_timeout_minutes"`
	MaxGamesPerIP      int           `mapstructure:"max_games_per_ip"`
}

// Config is the fully resolved configuration.
type Config struct {
	Agent       Agent
	Environment Environment
}

// Load builds a Config from defaults, an optional file at path (skipped
// if path is empty or the file does not exist), and environment variables
// prefixed MASTERGOAL_ (e.g. MASTERGOAL_AGENT_MCTS_ITERATIONS).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("mastergoal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrap(err, "reading config file")
			}
		}
	}

	cfg := &Config{
		Agent: Agent{
			Name:  v.GetString("agent.name"),
			Level: v.GetInt("agent.level"),
			Kind:  v.GetString("agent.kind"),
			MCTS: MCTS{
				Iterations:          v.GetInt("agent.mcts.iterations"),
				Exploration:         v.GetFloat64("agent.mcts.exploration"),
				ThreadCount:         v.GetInt("agent.mcts.thread_count"),
				HeuristicBias:       v.GetFloat64("agent.mcts.heuristic_bias"),
				OpeningBookEnabled:  v.GetBool("agent.mcts.opening_book_enabled"),
				FinalMoveStrategy:   v.GetString("agent.mcts.final_move_strategy"),
				RobustMaxPercentage: v.GetFloat64("agent.mcts.robust_max_percentage"),
				PlayoutCap:          v.GetInt("agent.mcts.playout_cap"),
				SelectionStrategy:   v.GetString("agent.mcts.selection_strategy"),
			},
			Minimax: Minimax{
				DepthOverride: v.GetInt("agent.minimax.depth_override"),
				WeightsPath:   v.GetString("agent.minimax.weights_path"),
			},
			Heuristic: Heuristic{
				Style:     v.GetString("agent.heuristic.style"),
				Intensity: v.GetString("agent.heuristic.intensity"),
				Playstyle: v.GetString("agent.heuristic.playstyle"),
			},
		},
		Environment: Environment{
			AIMoveTimeout:      v.GetDuration("environment.ai_move_timeout"),
			GameTimeoutMinutes: v.GetInt("environment.game_timeout_minutes"),
			MaxGamesPerIP:      v.GetInt("environment.max_games_per_ip"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("agent.name", "default")
	v.SetDefault("agent.level", 2)
	v.SetDefault("agent.kind", "heuristic")

	v.SetDefault("agent.mcts.iterations", 1000)
	v.SetDefault("agent.mcts.exploration", 1.41421356)
	v.SetDefault("agent.mcts.thread_count", 4)
	v.SetDefault("agent.mcts.heuristic_bias", 1.0)
	v.SetDefault("agent.mcts.opening_book_enabled", true)
	v.SetDefault("agent.mcts.final_move_strategy", "robust_child")
	v.SetDefault("agent.mcts.robust_max_percentage", 0.3)
	v.SetDefault("agent.mcts.playout_cap", 60)
	v.SetDefault("agent.mcts.selection_strategy", "uct")

	v.SetDefault("agent.minimax.depth_override", 0)
	v.SetDefault("agent.minimax.weights_path", "")

	v.SetDefault("agent.heuristic.style", "basic")
	v.SetDefault("agent.heuristic.intensity", "medium")
	v.SetDefault("agent.heuristic.playstyle", "balanced")

	v.SetDefault("environment.ai_move_timeout", "4s")
	v.SetDefault("environment.game_timeout_minutes", 30)
	v.SetDefault("environment.max_games_per_ip", 5)
}
