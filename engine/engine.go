package engine

import (
	"time"

	"github.com/EmoruwaTolu/ShowdownBattler/experiments/metrics"
	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// MaxTurns caps a battle that neither side manages to close out.
const MaxTurns = 300

// Winner labels for Result.Winner.
const (
	WinnerUs       = "us"
	WinnerOpponent = "opponent"
	WinnerDraw     = "draw"
)

// Result is the outcome of one completed battle.
type Result struct {
	Winner    string
	Turns     int
	Battle    metrics.BattleMetric
	Decisions []metrics.DecisionMetric
}

// Engine runs one battle until a winner is found or MaxTurns is reached.
type Engine interface {
	Run() (Result, error)
}

func newBattleMetric() metrics.BattleMetric {
	return metrics.BattleMetric{StartTime: time.Now()}
}

func completeBattleMetric(m *metrics.BattleMetric, winner string, turns int) {
	m.Winner = winner
	m.Turns = turns
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
}

func outcomeWinner(state *game.ShadowState, turns int) string {
	if turns >= MaxTurns && !state.Terminal() {
		return WinnerDraw
	}
	switch state.Outcome() {
	case 1:
		return WinnerUs
	case -1:
		return WinnerOpponent
	}
	return WinnerDraw
}
