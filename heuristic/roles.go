package heuristic

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/rules"
)

type role int

const (
	roleGoalkeeper role = iota
	roleDefender
	roleMidfielder
)

// Playstyle selects the defensive-line/press-threshold preset from the
// source constructor ("defensive"/"balanced"/"offensive").
type Playstyle string

const (
	PlaystyleDefensive Playstyle = "defensive"
	PlaystyleBalanced  Playstyle = "balanced"
	PlaystyleOffensive Playstyle = "offensive"
)

// Roles is the one-time-role-assignment agent of HeuristicRoleBased:
// on first move it partitions its own roster into goalkeeper/defender/
// midfielder by defensive depth, then plays an attacking, defending,
// or transition move depending on where the ball sits.
type Roles struct {
	side            board.Team
	defensiveLine   int
	pressThreshold  int
	forwardSupport  int
	assigned        map[int]role
}

func NewRoles(style Playstyle) *Roles {
	r := &Roles{assigned: make(map[int]role)}
	switch style {
	case PlaystyleDefensive:
		r.defensiveLine, r.pressThreshold, r.forwardSupport = 4, 3, 2
	case PlaystyleOffensive:
		r.defensiveLine, r.pressThreshold, r.forwardSupport = 2, 5, 4
	default:
		r.defensiveLine, r.pressThreshold, r.forwardSupport = 3, 4, 3
	}
	return r
}

func (r *Roles) OnGameStart(side board.Team) { r.side = side }
func (r *Roles) OnGameEnd()                  { r.assigned = make(map[int]role) }

func (r *Roles) Choose(ctx context.Context, s *rules.GameState, deadline time.Time) (rules.MoveAction, error) {
	moves := rules.LegalMoves(s)
	if len(moves) == 0 {
		return rules.MoveAction{}, agent.New(agent.KindInvalidInput, "no legal moves available")
	}
	r.ensureRoles(s)
	playerMoves, kickMoves := split(moves)

	if gm := goalMoves(s, kickMoves); len(gm) > 0 {
		return gm[0], nil
	}

	switch r.determinePhase(s) {
	case phaseAttacking:
		if m, ok := r.selectAttackingMove(s, playerMoves, kickMoves); ok {
			return m, nil
		}
	case phaseDefending:
		if m, ok := r.selectDefensiveMove(s, playerMoves, kickMoves); ok {
			return m, nil
		}
	default:
		if m, ok := r.selectTransitionMove(s, playerMoves, kickMoves); ok {
			return m, nil
		}
	}
	return moves[rand.Intn(len(moves))], nil
}

type matchPhase int

const (
	phaseAttacking matchPhase = iota
	phaseDefending
	phaseTransition
)

func (r *Roles) determinePhase(s *rules.GameState) matchPhase {
	ballRow := s.Ball.Position.Row
	if s.CurrentTeam == board.LEFT {
		switch {
		case ballRow >= 10:
			return phaseAttacking
		case ballRow <= 4:
			return phaseDefending
		}
		return phaseTransition
	}
	switch {
	case ballRow <= 4:
		return phaseAttacking
	case ballRow >= 10:
		return phaseDefending
	}
	return phaseTransition
}

// ensureRoles assigns roles once per agent lifetime (until OnGameEnd
// resets them), sorted by defensive depth: the deepest player becomes
// goalkeeper, the next two defenders, the rest midfielders.
func (r *Roles) ensureRoles(s *rules.GameState) {
	if len(r.assigned) > 0 {
		return
	}
	team := s.CurrentTeam
	ptrs := s.PlayersOf(team)
	players := make([]rules.Player, len(ptrs))
	for i, p := range ptrs {
		players[i] = *p
	}
	sort.Slice(players, func(i, j int) bool {
		if team == board.LEFT {
			return players[i].Position.Row < players[j].Position.Row
		}
		return players[i].Position.Row > players[j].Position.Row
	})
	for i, p := range players {
		switch {
		case i == 0:
			r.assigned[p.ID] = roleGoalkeeper
		case i <= 2:
			r.assigned[p.ID] = roleDefender
		default:
			r.assigned[p.ID] = roleMidfielder
		}
	}
}

func (r *Roles) roleOf(id int) role {
	if rl, ok := r.assigned[id]; ok {
		return rl
	}
	return roleMidfielder
}

func (r *Roles) selectAttackingMove(s *rules.GameState, moves, kicks []rules.MoveAction) (rules.MoveAction, bool) {
	team := s.CurrentTeam
	goalRow := board.AttackRow(team)
	var nearGoal []rules.MoveAction
	for _, m := range kicks {
		if abs(m.To.Row-goalRow) <= 3 {
			nearGoal = append(nearGoal, m)
		}
	}
	if len(nearGoal) > 0 {
		return pickBest(nearGoal, func(m rules.MoveAction) float64 {
			return -float64(abs(m.To.Col - 5))
		})
	}

	var advancing []rules.MoveAction
	for _, m := range moves {
		p := mover(s, m)
		rl := r.roleOf(p.ID)
		if rl != roleMidfielder {
			continue
		}
		if m.To.ChebyshevDistance(s.Ball.Position) < m.From.ChebyshevDistance(s.Ball.Position) &&
			advancement(team, m.From, m.To) > 0 {
			advancing = append(advancing, m)
		}
	}
	if len(advancing) > 0 {
		return advancing[0], true
	}

	return r.selectSupportKick(s, kicks)
}

func (r *Roles) selectSupportKick(s *rules.GameState, kicks []rules.MoveAction) (rules.MoveAction, bool) {
	team := s.CurrentTeam
	var out []rules.MoveAction
	for _, m := range kicks {
		for _, tm := range s.PlayersOf(team) {
			rl := r.roleOf(tm.ID)
			if rl == roleMidfielder && tm.Position.IsAdjacent(m.To) && advancement(team, s.Ball.Position, tm.Position) > 0 {
				out = append(out, m)
			}
		}
	}
	if len(out) == 0 {
		return rules.MoveAction{}, false
	}
	return out[0], true
}

func (r *Roles) selectDefensiveMove(s *rules.GameState, moves, kicks []rules.MoveAction) (rules.MoveAction, bool) {
	team := s.CurrentTeam
	var clearing []rules.MoveAction
	for _, m := range kicks {
		if advancement(team, m.From, m.To) > 3 {
			clearing = append(clearing, m)
		}
	}
	if len(clearing) > 0 {
		return clearing[0], true
	}

	var covering []rules.MoveAction
	for _, m := range moves {
		p := mover(s, m)
		rl := r.roleOf(p.ID)
		if rl == roleGoalkeeper {
			continue
		}
		if m.To.ChebyshevDistance(s.Ball.Position) <= 2 {
			covering = append(covering, m)
		}
	}
	if len(covering) > 0 {
		return pickBest(covering, func(m rules.MoveAction) float64 {
			return -float64(m.To.ChebyshevDistance(s.Ball.Position))
		})
	}

	var gkMoves []rules.MoveAction
	for _, m := range moves {
		p := mover(s, m)
		if r.roleOf(p.ID) == roleGoalkeeper {
			gkMoves = append(gkMoves, m)
		}
	}
	if len(gkMoves) > 0 {
		return r.selectGoalkeeperPosition(s, gkMoves)
	}
	return rules.MoveAction{}, false
}

func (r *Roles) selectGoalkeeperPosition(s *rules.GameState, moves []rules.MoveAction) (rules.MoveAction, bool) {
	ownGoal := board.DefendRow(s.CurrentTeam)
	ball := s.Ball.Position
	return pickBest(moves, func(m rules.MoveAction) float64 {
		score := -float64(abs(m.To.Row-ownGoal)) * 2
		score += 5 - float64(abs(m.To.Col-ball.Col))
		return score
	})
}

func (r *Roles) selectTransitionMove(s *rules.GameState, moves, kicks []rules.MoveAction) (rules.MoveAction, bool) {
	team := s.CurrentTeam
	for _, m := range kicks {
		for _, tm := range s.PlayersOf(team) {
			rl := r.roleOf(tm.ID)
			if rl != roleGoalkeeper && tm.Position.IsAdjacent(m.To) && advancement(team, s.Ball.Position, tm.Position) > 0 {
				return m, true
			}
		}
	}
	ball := s.Ball.Position
	for _, m := range moves {
		p := mover(s, m)
		if r.roleOf(p.ID) == roleGoalkeeper {
			continue
		}
		if m.To.ChebyshevDistance(ball) <= m.From.ChebyshevDistance(ball) {
			return m, true
		}
	}
	return rules.MoveAction{}, false
}
