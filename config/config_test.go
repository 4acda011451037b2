package config_test

import (
	"testing"
	"time"

	"github.com/amparooliver/mastergoal-engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Agent.Level)
	assert.Equal(t, "heuristic", cfg.Agent.Kind)
	assert.Equal(t, 1000, cfg.Agent.MCTS.Iterations)
	assert.Equal(t, "robust_child", cfg.Agent.MCTS.FinalMoveStrategy)
	assert.Equal(t, 4*time.Second, cfg.Environment.AIMoveTimeout)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load("/nonexistent/mastergoal.yaml")
	require.NoError(t, err)
	assert.Equal(t, "basic", cfg.Agent.Heuristic.Style)
}
