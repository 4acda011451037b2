package heuristic

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/amparooliver/mastergoal-engine/agent"
	"github.com/amparooliver/mastergoal-engine/board"
	"github.com/amparooliver/mastergoal-engine/rules"
)

// Advanced weight constants, carried verbatim from
// original_source/.../agents/heuristic_agent_level2.py's
// HeuristicAgentLevel2.__init__.
const (
	weightGoalOpportunity = 1000.0
	weightGoalProximity    = 50.0
	weightBallControl      = 30.0
	weightAdvancement      = 25.0
	weightPassingLane      = 20.0
	weightDefensive        = 15.0
	weightSpaceControl     = 10.0
)

// Advanced is the multi-factor weighted-scoring agent of
// HeuristicAgentLevel2: every kick and every player move gets scored
// on several tactical factors, and the higher-scoring of the two best
// candidates is played.
type Advanced struct {
	side board.Team
}

func NewAdvanced() *Advanced { return &Advanced{} }

func (a *Advanced) OnGameStart(side board.Team) { a.side = side }
func (a *Advanced) OnGameEnd()                  {}

func (a *Advanced) Choose(ctx context.Context, s *rules.GameState, deadline time.Time) (rules.MoveAction, error) {
	moves := rules.LegalMoves(s)
	if len(moves) == 0 {
		return rules.MoveAction{}, agent.New(agent.KindInvalidInput, "no legal moves available")
	}
	playerMoves, kickMoves := split(moves)

	if gm := goalMoves(s, kickMoves); len(gm) > 0 {
		return gm[0], nil
	}

	bestKick, haveKick := pickBest(kickMoves, func(m rules.MoveAction) float64 { return scoreKick(s, m) })
	bestMove, haveMove := pickBest(playerMoves, func(m rules.MoveAction) float64 { return scorePlayerMove(s, m) })

	kickScore, moveScore := math.Inf(-1), math.Inf(-1)
	if haveKick {
		kickScore = scoreKick(s, bestKick)
	}
	if haveMove {
		moveScore = scorePlayerMove(s, bestMove)
	}

	switch {
	case haveKick && kickScore > moveScore:
		return bestKick, nil
	case haveMove:
		return bestMove, nil
	case haveKick:
		return bestKick, nil
	}

	if am := advancingKicks(s, kickMoves); len(am) > 0 {
		return selectBestAdvancingKick(s, am), nil
	}
	return moves[rand.Intn(len(moves))], nil
}

// scoreKick implements HeuristicAgentLevel2._score_kick.
func scoreKick(s *rules.GameState, m rules.MoveAction) float64 {
	team := s.CurrentTeam
	goalRow := board.AttackRow(team)
	score := 0.0

	distanceToGoal := float64(abs(m.To.Row-goalRow) + abs(m.To.Col-5))
	score += weightGoalProximity * (15 - distanceToGoal)

	score += weightAdvancement * float64(advancement(team, m.From, m.To))

	score += weightPassingLane * float64(countNear(s, team, m.To, 1)) * 2

	opp := team.Opponent()
	score -= weightBallControl * float64(countNear(s, opp, m.To, 1)) * 3

	centerBonus := 2 - math.Abs(float64(m.To.Col-5))/5.0
	score += weightSpaceControl * centerBonus

	if hasClearPathToGoal(s, m.To) {
		score += weightGoalOpportunity * 0.3
	}

	score += evaluateQuadrantValue(s, m.To, false)
	return score
}

// scorePlayerMove implements HeuristicAgentLevel2._score_player_move.
func scorePlayerMove(s *rules.GameState, m rules.MoveAction) float64 {
	team := s.CurrentTeam
	ball := s.Ball.Position
	score := 0.0

	currentDistance := m.From.ChebyshevDistance(ball)
	newDistance := m.To.ChebyshevDistance(ball)
	score += weightBallControl * float64(currentDistance-newDistance) * 5

	teammatesNearby := countNear(s, team, m.To, 2)
	score += weightPassingLane * float64(teammatesNearby)

	if isDefensivePositionNeeded(s) {
		score += weightDefensive * evaluateDefensivePosition(s, m.To)
	}

	score += evaluateQuadrantValue(s, m.To, true)

	if newDistance <= 1 {
		score += weightBallControl * 5
	}

	if advancement(team, m.From, m.To) > 0 {
		score += weightAdvancement * 2
	}

	if teammatesNearby > 2 {
		score -= 5 * float64(teammatesNearby-2)
	}
	return score
}

func hasClearPathToGoal(s *rules.GameState, pos board.Position) bool {
	team := s.CurrentTeam
	if team == board.LEFT {
		if pos.Row < 10 {
			return false
		}
	} else if pos.Row > 4 {
		return false
	}

	goalCols := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true}
	blocking := 0
	for _, opp := range s.PlayersOf(team.Opponent()) {
		if team == board.LEFT {
			if opp.Position.Row > pos.Row && goalCols[opp.Position.Col] {
				blocking++
			}
		} else {
			if opp.Position.Row < pos.Row && goalCols[opp.Position.Col] {
				blocking++
			}
		}
	}
	return blocking <= 1
}

func isDefensivePositionNeeded(s *rules.GameState) bool {
	if s.CurrentTeam == board.LEFT {
		return s.Ball.Position.Row < board.Rows/2
	}
	return s.Ball.Position.Row > board.Rows/2
}

func evaluateDefensivePosition(s *rules.GameState, pos board.Position) float64 {
	team := s.CurrentTeam
	ball := s.Ball.Position
	if team == board.LEFT {
		if pos.Row < ball.Row {
			return 10.0 / (float64(pos.ChebyshevDistance(ball)) + 1)
		}
	} else if pos.Row > ball.Row {
		return 10.0 / (float64(pos.ChebyshevDistance(ball)) + 1)
	}
	return 0.0
}

// quadrant splits rows 1-13 of the pitch into 4 halves-of-halves;
// quadrant 0 is the two goal rows (0 and 14), which get no bonus.
func quadrant(pos board.Position) int {
	row, col := pos.Row, pos.Col
	switch {
	case row >= 7 && row <= 13 && col >= 0 && col <= 5:
		return 1
	case row >= 7 && row <= 13 && col >= 6 && col <= 10:
		return 2
	case row >= 1 && row <= 6 && col >= 0 && col <= 5:
		return 3
	case row >= 1 && row <= 6 && col >= 6 && col <= 10:
		return 4
	default:
		return 0
	}
}

func evaluateQuadrantValue(s *rules.GameState, pos board.Position, forPlayer bool) float64 {
	q := quadrant(pos)
	if q == 0 {
		return 0
	}
	ballQuadrant := quadrant(s.Ball.Position)
	value := 0.0
	if q == ballQuadrant {
		value += 5.0
	}

	team := s.CurrentTeam
	var attacking []int
	if team == board.LEFT {
		attacking = []int{3, 4}
	} else {
		attacking = []int{1, 2}
	}
	for _, a := range attacking {
		if q == a {
			value += 10.0
		}
	}
	if !forPlayer {
		target := lessDefendedQuadrant(s, attacking)
		if q == target {
			value += 8.0
		}
	}
	return value
}

func lessDefendedQuadrant(s *rules.GameState, quadrants []int) int {
	opp := s.CurrentTeam.Opponent()
	counts := make(map[int]int, len(quadrants))
	for _, q := range quadrants {
		counts[q] = 0
	}
	for _, p := range s.PlayersOf(opp) {
		q := quadrant(p.Position)
		if _, ok := counts[q]; ok {
			counts[q]++
		}
	}
	best := quadrants[0]
	for _, q := range quadrants {
		if counts[q] < counts[best] {
			best = q
		}
	}
	return best
}

// selectBestAdvancingKick implements
// HeuristicAgentLevel2._select_best_advancing_kick. Choose reaches this
// fallback only when it has neither a kick nor a player move to score.
func selectBestAdvancingKick(s *rules.GameState, kicks []rules.MoveAction) rules.MoveAction {
	if len(kicks) == 1 {
		return kicks[0]
	}
	team := s.CurrentTeam
	goalRow := board.AttackRow(team)
	best, _ := pickBest(kicks, func(m rules.MoveAction) float64 {
		score := 0.0
		score += float64(15-abs(goalRow-m.To.Row)) * 3
		score += float64(5-abs(m.To.Col-5)) * 2
		score += float64(countNear(s, team, m.To, 2)) * 2
		score -= float64(countNear(s, team.Opponent(), m.To, 1)) * 3
		return score
	})
	return best
}
