package metrics

import (
	"time"

	"github.com/EmoruwaTolu/ShowdownBattler/searcher"
)

// AgentConfig identifies one search configuration under test.
type AgentConfig struct {
	ID          int
	Goroutines  int
	Simulations int
	Duration    time.Duration
	MaxDepth    int
	CPuct       float64
	Temperature float64
}

// BattleMetric covers one complete battle.
type BattleMetric struct {
	Winner    string
	Turns     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// DecisionMetric covers one search call inside a battle.
type DecisionMetric struct {
	Turn      int
	Action    string
	RootValue float64
	searcher.SearchMetric
}

// BattleRecord ties a battle's metrics to the agent config that played it.
type BattleRecord struct {
	ID    string // uuid
	Agent int    // AgentConfig.ID
	BattleMetric
}

// DecisionRecord ties a decision's metrics to its battle.
type DecisionRecord struct {
	Battle string // BattleRecord.ID
	DecisionMetric
}
