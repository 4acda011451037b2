package rules

import (
	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/pkg/errors"
)

// Result reports what happened during a single Execute call, beyond the
// state mutation itself — the pieces of information a caller (an agent
// coordinator, a UI, a test) cannot recover just by diffing the state.
type Result struct {
	Action               MoveAction
	Goal                 bool
	ScoringTeam          board.Team
	CapturedByGoalkeeper bool
	ExtraTurn            bool
}

// Execute applies action to state in place. Preconditions: action must be
// a member of LegalMoves(state); callers that want to keep the
// pre-execution state must Clone it first (state.Clone()), matching
// spec.md §4.D's "execute(state, move) → state'" contract implemented as
// in-place mutation plus an explicit prior clone.
func Execute(s *GameState, action MoveAction) (Result, error) {
	if !isLegal(s, action) {
		return Result{}, errors.Wrap(ErrIllegalMove, action.String())
	}
	if action.Kind == Move {
		return executeMove(s, action)
	}
	return executeKick(s, action)
}

func isLegal(s *GameState, action MoveAction) bool {
	for _, m := range LegalMoves(s) {
		if m == action {
			return true
		}
	}
	return false
}

func executeMove(s *GameState, action MoveAction) (Result, error) {
	p, ok := s.PlayerAt(action.From)
	if !ok {
		panicInvariant("MOVE from an empty cell: " + action.From.String())
	}
	p.Position = action.To
	s.PassesCount = 0
	s.CurrentTeam = s.CurrentTeam.Opponent()
	s.TurnCount++
	s.checkInvariants()
	return Result{Action: action}, nil
}

func executeKick(s *GameState, action MoveAction) (Result, error) {
	kickingTeam := s.CurrentTeam
	to := action.To

	if InGoalArea(to, kickingTeam) {
		defendingTeam := kickingTeam.Opponent()
		if gk := goalkeeperAt(s, to, defendingTeam); gk != nil {
			return finishCapture(s, action, to, defendingTeam, true)
		}
		if kickingTeam == board.LEFT {
			s.LeftGoals++
		} else {
			s.RightGoals++
		}
		s.resetToOpening()
		s.LastPossessionTeam = kickingTeam
		s.CurrentTeam = defendingTeam
		s.TurnCount++
		s.checkInvariants()
		return Result{Action: action, Goal: true, ScoringTeam: kickingTeam}, nil
	}

	if occupant, ok := s.PlayerAt(to); ok {
		if occupant.Team == kickingTeam {
			return finishPass(s, action, to, kickingTeam)
		}
		return finishCapture(s, action, to, occupant.Team, false)
	}

	return finishNeutral(s, action, to, kickingTeam)
}

func goalkeeperAt(s *GameState, pos board.Position, team board.Team) *Player {
	if p, ok := s.PlayerAt(pos); ok && p.IsGoalkeeper && p.Team == team {
		return p
	}
	return nil
}

func finishPass(s *GameState, action MoveAction, to board.Position, kickingTeam board.Team) (Result, error) {
	s.Ball.Position = to
	s.PassesCount++
	s.LastPossessionTeam = kickingTeam
	s.CurrentTeam = kickingTeam.Opponent()
	s.TurnCount++
	s.checkInvariants()
	return Result{Action: action}, nil
}

func finishCapture(s *GameState, action MoveAction, to board.Position, capturingTeam board.Team, byGoalkeeper bool) (Result, error) {
	s.Ball.Position = to
	s.PassesCount = 0
	s.LastPossessionTeam = capturingTeam
	s.CurrentTeam = capturingTeam
	s.TurnCount++
	s.checkInvariants()
	return Result{Action: action, CapturedByGoalkeeper: byGoalkeeper}, nil
}

func finishNeutral(s *GameState, action MoveAction, to board.Position, kickingTeam board.Team) (Result, error) {
	s.Ball.Position = to
	s.PassesCount = 0
	s.LastPossessionTeam = kickingTeam

	extraTurn := false
	if owner, ok := s.cfg.SpecialTiles[to]; ok && owner == kickingTeam {
		extraTurn = true
	}
	if !extraTurn {
		s.CurrentTeam = kickingTeam.Opponent()
	}
	s.TurnCount++
	s.checkInvariants()
	return Result{Action: action, ExtraTurn: extraTurn}, nil
}

// Outcome is the terminal classification of spec.md §6's is_game_over.
type Outcome int

const (
	Ongoing Outcome = iota
	LeftWins
	RightWins
	Draw
)

// TerminalOptions carries the two overrides spec.md §4.D/§9 describe:
// an external win-goals target and an external max-turns draw cap. Either
// may be left at its zero value to mean "no override" (nil-equivalent for
// a value type: use a pointer so the distinction survives).
type TerminalOptions struct {
	WinGoals *int
	MaxTurns *int
}

// defaultWinGoals is the win target applied when the caller supplies no
// WinGoals override, per spec.md §4.D ("win_goals (default 2,
// overrideable by the outer wrapper)").
const defaultWinGoals = 2

// internalDrawTurnCap is the engine's own fallback draw threshold, used
// only when the caller supplies no MaxTurns override. Grounded on
// spec.md §4.D "an optional internal cap may also fire (e.g., 200-turn
// draw)".
const internalDrawTurnCap = 200

// IsGameOver implements spec.md §6's is_game_over contract. External
// overrides take precedence over the internal cap, per spec.md §9's
// resolved open question and original_source/backend/game_manager.py's
// check_game_status, which checks win_goals and max_turns_enabled before
// ever consulting the game's own internal termination logic.
func IsGameOver(s *GameState, opts TerminalOptions) (ended bool, winner Outcome) {
	winGoals := defaultWinGoals
	if opts.WinGoals != nil {
		winGoals = *opts.WinGoals
	}
	if s.LeftGoals >= winGoals {
		return true, LeftWins
	}
	if s.RightGoals >= winGoals {
		return true, RightWins
	}

	if opts.MaxTurns != nil {
		if s.TurnCount >= *opts.MaxTurns {
			return true, Draw
		}
	} else if s.TurnCount >= internalDrawTurnCap {
		return true, Draw
	}
	return false, Ongoing
}
