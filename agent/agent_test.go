package agent_test

import (
	"math/rand"
	"testing"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/amparooliver/mastergoal-engine/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stdRand struct{ r *rand.Rand }

func (s stdRand) Intn(n int) int   { return s.r.Intn(n) }
func (s stdRand) Float64() float64 { return s.r.Float64() }

func TestRandomFallbackReturnsLegalMove(t *testing.T) {
	state, err := rules.NewGame(1)
	require.NoError(t, err)

	rng := stdRand{r: rand.New(rand.NewSource(1))}
	move, ok := agent.RandomFallback(state, rng)
	require.True(t, ok)
	assert.Contains(t, rules.LegalMoves(state), move)
}

func TestErrorWrapPreservesKindAndCause(t *testing.T) {
	cause := rules.ErrIllegalMove
	err := agent.Wrap(agent.KindIllegalMove, cause, "MOVE (0,0)->(1,1)")
	assert.Equal(t, agent.KindIllegalMove, err.Kind)
	assert.True(t, err.IsRecoverable())
	assert.ErrorIs(t, err, rules.ErrIllegalMove)
}
