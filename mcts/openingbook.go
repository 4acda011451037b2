package mcts

import (
	"math/rand"

	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/rules"
)

// openingBookMove returns the canonical turn-0 LEFT opening for state's
// level, if aiTeam is LEFT, it is to move, and the turn count is still
// zero. Grounded on mcts_AI.py's _opening_book_move: levels 1-2 always
// play the same central advance; level 3 picks uniformly between the
// two symmetric flank advances. Either candidate is filtered against
// the current legal-move set so a stale or already-played book entry
// falls through to a full search instead of returning an illegal move.
func openingBookMove(state *rules.GameState, aiTeam board.Team, seed int64) (rules.MoveAction, bool) {
	if state.TurnCount != 0 || aiTeam != board.LEFT || state.CurrentTeam != board.LEFT {
		return rules.MoveAction{}, false
	}

	legal := rules.LegalMoves(state)
	switch state.Level {
	case 1, 2:
		candidate := rules.MoveAction{
			Kind: rules.Move,
			From: board.Position{Row: 4, Col: 5},
			To:   board.Position{Row: 6, Col: 5},
		}
		if containsMove(legal, candidate) {
			return candidate, true
		}
	case 3:
		options := []rules.MoveAction{
			{Kind: rules.Move, From: board.Position{Row: 4, Col: 3}, To: board.Position{Row: 6, Col: 5}},
			{Kind: rules.Move, From: board.Position{Row: 4, Col: 7}, To: board.Position{Row: 6, Col: 5}},
		}
		var valid []rules.MoveAction
		for _, o := range options {
			if containsMove(legal, o) {
				valid = append(valid, o)
			}
		}
		if len(valid) > 0 {
			rng := rand.New(rand.NewSource(seed))
			return valid[rng.Intn(len(valid))], true
		}
	}
	return rules.MoveAction{}, false
}

func containsMove(moves []rules.MoveAction, m rules.MoveAction) bool {
	for _, candidate := range moves {
		if candidate == m {
			return true
		}
	}
	return false
}
