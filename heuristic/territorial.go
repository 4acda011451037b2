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

// gamePhase mirrors HeuristicTerritorialControl's PRESS/CONTROL/STRIKE
// game-phase determination.
type gamePhase int

const (
	phasePress gamePhase = iota
	phaseControl
	phaseStrike
)

// Territorial is the 9-zone phase-machine agent of
// HeuristicTerritorialControl: it reads zone control (using the same
// row/5, col-split zone numbering as rules.ZoneIndex) to decide
// whether to press, consolidate control, or strike, then scores moves
// accordingly.
type Territorial struct {
	side             board.Team
	pressureBonus    float64
	controlBonus     float64
	optimalSpacing   float64
	pressureThresh   int
	minPlayersToPress int
}

// Intensity selects the pressure_intensity preset from the source
// constructor ("low"/"medium"/"high").
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

func NewTerritorial(intensity Intensity) *Territorial {
	t := &Territorial{
		optimalSpacing: 3.0,
		controlBonus:   15.0,
		pressureBonus:  20.0,
	}
	switch intensity {
	case IntensityLow:
		t.minPlayersToPress, t.pressureThresh = 3, 3
	case IntensityHigh:
		t.minPlayersToPress, t.pressureThresh = 1, 1
	default:
		t.minPlayersToPress, t.pressureThresh = 2, 2
	}
	return t
}

func (t *Territorial) OnGameStart(side board.Team) { t.side = side }
func (t *Territorial) OnGameEnd()                  {}

func (t *Territorial) Choose(ctx context.Context, s *rules.GameState, deadline time.Time) (rules.MoveAction, error) {
	moves := rules.LegalMoves(s)
	if len(moves) == 0 {
		return rules.MoveAction{}, agent.New(agent.KindInvalidInput, "no legal moves available")
	}
	playerMoves, kickMoves := split(moves)

	if gm := goalMoves(s, kickMoves); len(gm) > 0 {
		return gm[0], nil
	}

	phase := t.determinePhase(s)
	switch phase {
	case phasePress:
		if m, ok := t.selectPressingMove(s, playerMoves, kickMoves); ok {
			return m, nil
		}
	case phaseControl:
		if m, ok := t.selectControlMove(s, playerMoves, kickMoves); ok {
			return m, nil
		}
	case phaseStrike:
		if m, ok := t.selectStrikingMove(s, kickMoves); ok {
			return m, nil
		}
	}

	if m, ok := t.selectFormationMove(s, playerMoves); ok {
		return m, nil
	}
	return moves[rand.Intn(len(moves))], nil
}

func (t *Territorial) zoneControl(s *rules.GameState) map[int]board.Team {
	control := make(map[int]board.Team)
	counts := make(map[int]map[board.Team]int)
	for _, team := range []board.Team{board.LEFT, board.RIGHT} {
		for _, p := range s.PlayersOf(team) {
			row, col := rules.ZoneIndex(p.Position)
			zone := row*3 + col
			if counts[zone] == nil {
				counts[zone] = make(map[board.Team]int)
			}
			counts[zone][team]++
		}
	}
	for zone, byTeam := range counts {
		if byTeam[board.LEFT] > byTeam[board.RIGHT] {
			control[zone] = board.LEFT
		} else if byTeam[board.RIGHT] > byTeam[board.LEFT] {
			control[zone] = board.RIGHT
		}
	}
	return control
}

func ballZone(s *rules.GameState) int {
	row, col := rules.ZoneIndex(s.Ball.Position)
	return row*3 + col
}

func (t *Territorial) determinePhase(s *rules.GameState) gamePhase {
	team := s.CurrentTeam
	control := t.zoneControl(s)
	bz := ballZone(s)
	row := bz / 3

	attackingThird := (team == board.LEFT && row == 2) || (team == board.RIGHT && row == 0)
	defensiveThird := (team == board.LEFT && row == 0) || (team == board.RIGHT && row == 2)

	if defensiveThird {
		return phasePress
	}
	if attackingThird {
		if control[bz] == team {
			return phaseStrike
		}
		return phasePress
	}

	controlled := 0
	for _, owner := range control {
		if owner == team {
			controlled++
		}
	}
	if controlled >= 5 {
		return phaseControl
	}
	underPressure := countNear(s, team.Opponent(), s.Ball.Position, 2) >= t.pressureThresh
	if underPressure {
		return phasePress
	}
	return phaseControl
}

func (t *Territorial) selectPressingMove(s *rules.GameState, moves, kicks []rules.MoveAction) (rules.MoveAction, bool) {
	if cm, ok := clearingKick(s, kicks); ok {
		return cm, true
	}
	if len(moves) == 0 {
		return rules.MoveAction{}, false
	}
	ball := s.Ball.Position
	return pickBest(moves, func(m rules.MoveAction) float64 {
		newDist := m.To.ChebyshevDistance(ball)
		score := 0.0
		if newDist <= 1 {
			score += 100
		} else {
			score += 50 / (float64(newDist) + 1)
		}
		for _, opp := range s.PlayersOf(s.CurrentTeam.Opponent()) {
			if isBetween(m.To, ball, opp.Position) {
				score += 20
			}
		}
		return score
	})
}

func clearingKick(s *rules.GameState, kicks []rules.MoveAction) (rules.MoveAction, bool) {
	team := s.CurrentTeam
	for _, m := range kicks {
		if advancement(team, m.From, m.To) > 3 {
			return m, true
		}
	}
	return rules.MoveAction{}, false
}

func isBetween(point, a, b board.Position) bool {
	minRow, maxRow := a.Row, b.Row
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	minCol, maxCol := a.Col, b.Col
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	return point.Row >= minRow && point.Row <= maxRow && point.Col >= minCol && point.Col <= maxCol
}

func (t *Territorial) selectControlMove(s *rules.GameState, moves, kicks []rules.MoveAction) (rules.MoveAction, bool) {
	team := s.CurrentTeam
	control := t.zoneControl(s)
	for _, m := range kicks {
		row, col := rules.ZoneIndex(m.To)
		zone := row*3 + col
		advancedZone := (team == board.LEFT && zone >= 6) || (team == board.RIGHT && zone <= 2)
		for _, tm := range s.PlayersOf(team) {
			if tm.Position.IsAdjacent(m.To) && advancedZone {
				return m, true
			}
		}
	}
	if len(moves) == 0 {
		return rules.MoveAction{}, false
	}
	bz := ballZone(s)
	return pickBest(moves, func(m rules.MoveAction) float64 {
		score := 0.0
		row, col := rules.ZoneIndex(m.To)
		zone := row*3 + col
		if adjacentZone(zone, bz) && control[zone] != team {
			score += t.controlBonus
		}
		score += t.spacingQuality(s, m) * 10
		if advancement(team, m.From, m.To) > 0 {
			score += 2
		}
		return score
	})
}

func adjacentZone(a, b int) bool {
	ar, ac := a/3, a%3
	br, bc := b/3, b%3
	return abs(ar-br) <= 1 && abs(ac-bc) <= 1
}

func (t *Territorial) spacingQuality(s *rules.GameState, m rules.MoveAction) float64 {
	team := s.CurrentTeam
	positions := make([]board.Position, 0, len(s.PlayersOf(team)))
	for _, p := range s.PlayersOf(team) {
		if p.ID == mover(s, m).ID {
			positions = append(positions, m.To)
		} else {
			positions = append(positions, p.Position)
		}
	}
	if len(positions) < 2 {
		return 0
	}
	total, count := 0.0, 0
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			total += float64(positions[i].ChebyshevDistance(positions[j]))
			count++
		}
	}
	avg := total / float64(count)
	deviation := math.Abs(avg - t.optimalSpacing)
	return math.Max(0, 10-deviation*2) / 10
}

func mover(s *rules.GameState, m rules.MoveAction) rules.Player {
	if p, ok := s.PlayerAt(m.From); ok {
		return *p
	}
	return rules.Player{}
}

func (t *Territorial) selectStrikingMove(s *rules.GameState, kicks []rules.MoveAction) (rules.MoveAction, bool) {
	if len(kicks) == 0 {
		return rules.MoveAction{}, false
	}
	team := s.CurrentTeam
	goalRow := board.AttackRow(team)
	return pickBest(kicks, func(m rules.MoveAction) float64 {
		goalDist := float64(abs(m.To.Row-goalRow) + abs(m.To.Col-5))
		score := (15 - goalDist) * 5
		score += (5 - math.Abs(float64(m.To.Col-5))) * 3
		score -= float64(countNear(s, team.Opponent(), m.To, 1)) * 10
		return score
	})
}

func (t *Territorial) selectFormationMove(s *rules.GameState, moves []rules.MoveAction) (rules.MoveAction, bool) {
	if len(moves) == 0 {
		return rules.MoveAction{}, false
	}
	ball := s.Ball.Position
	return pickBest(moves, func(m rules.MoveAction) float64 {
		score := t.spacingQuality(s, m) * 15
		dist := m.To.ChebyshevDistance(ball)
		if dist >= 2 && dist <= 4 {
			score += 20
		}
		score += float64(advancement(s.CurrentTeam, m.From, m.To)) * 3
		return score
	})
}
