package minimax

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/pkg/errors"
)

// Weights is the persisted tuning artifact of spec.md §6: a feature
// weight vector plus the search depth it was tuned against.
type Weights struct {
	Values []float64
	Depth  int
}

// rawWeightsFile accepts both documented shapes at once:
// {"weights": [...], "minimax_depth": N} and
// {"best_individual": {"weights": [...], "depth": N}}. Grounded on
// original_source/.../agents/mcts_minimax_random.py's MinimaxAgent
// loader, which checks 'best_individual' in data first, then 'weights'.
type rawWeightsFile struct {
	Weights       []float64 `json:"weights"`
	MinimaxDepth  *int      `json:"minimax_depth"`
	BestIndividual *struct {
		Weights []float64 `json:"weights"`
		Depth   int       `json:"depth"`
	} `json:"best_individual"`
}

// LoadWeightsFile reads and parses a weights file from disk.
func LoadWeightsFile(path string, expectedLen int) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, agent.Wrap(agent.KindInvalidInput, err, "reading weights file")
	}
	return ParseWeights(data, expectedLen)
}

// ParseWeights decodes the JSON document and validates the feature vector
// length against expectedLen, failing per spec.md §6 ("the number of
// weights must match the level's feature vector length or loading
// fails").
func ParseWeights(data []byte, expectedLen int) (*Weights, error) {
	var raw rawWeightsFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, agent.Wrap(agent.KindInvalidInput, errors.WithStack(err), "parsing weights file")
	}

	var values []float64
	var depth int
	switch {
	case raw.BestIndividual != nil:
		values = raw.BestIndividual.Weights
		depth = raw.BestIndividual.Depth
	case raw.Weights != nil:
		values = raw.Weights
		if raw.MinimaxDepth != nil {
			depth = *raw.MinimaxDepth
		}
	default:
		return nil, agent.New(agent.KindInvalidInput, "weights file has neither 'weights' nor 'best_individual'")
	}

	if len(values) != expectedLen {
		return nil, agent.New(agent.KindInvalidInput,
			fmt.Sprintf("expected %d weights for this level's feature vector, got %d", expectedLen, len(values)))
	}
	return &Weights{Values: values, Depth: depth}, nil
}
