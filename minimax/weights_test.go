package minimax_test

import (
	"testing"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/amparooliver/mastergoal-engine/minimax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeightsFlatShape(t *testing.T) {
	doc := []byte(`{"weights": [1,2,3,4,5,6,7,8], "minimax_depth": 4}`)
	w, err := minimax.ParseWeights(doc, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, w.Depth)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, w.Values)
}

func TestParseWeightsNestedShape(t *testing.T) {
	doc := []byte(`{"best_individual": {"weights": [0.1,0.2,0.3,0.4,0.5,0.6,0.7,0.8], "depth": 3}}`)
	w, err := minimax.ParseWeights(doc, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Depth)
	assert.InDelta(t, 0.8, w.Values[7], 1e-9)
}

func TestParseWeightsLengthMismatch(t *testing.T) {
	doc := []byte(`{"weights": [1,2,3], "minimax_depth": 2}`)
	_, err := minimax.ParseWeights(doc, 8)
	require.Error(t, err)
	var agentErr *agent.Error
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, agent.KindInvalidInput, agentErr.Kind)
}

func TestParseWeightsMissingBothShapes(t *testing.T) {
	doc := []byte(`{"unrelated": true}`)
	_, err := minimax.ParseWeights(doc, 8)
	require.Error(t, err)
}

func TestParseWeightsInvalidJSON(t *testing.T) {
	_, err := minimax.ParseWeights([]byte(`not json`), 8)
	require.Error(t, err)
}

func TestLoadWeightsFileMissing(t *testing.T) {
	_, err := minimax.LoadWeightsFile("/nonexistent/weights.json", 8)
	require.Error(t, err)
}
