package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/EmoruwaTolu/ShowdownBattler/searcher"
)

// readCSV loads one emitted file and returns its rows, header included.
func readCSV(t *testing.T, dir, name string) [][]string {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteAgentConfigs(t *testing.T) {
	w := &Writer{baseDir: t.TempDir()}
	configs := []AgentConfig{
		{ID: 1, Goroutines: 1, Simulations: 50, MaxDepth: 4, CPuct: 1.6},
		{ID: 2, Goroutines: 4, Duration: 50 * time.Millisecond, MaxDepth: 4, CPuct: 1.6, Temperature: 0.5},
	}

	require.NoError(t, w.WriteAgentConfigs(configs))

	rows := readCSV(t, w.baseDir, "agent_configs.csv")
	require.Len(t, rows, 3)
	require.Equal(t, []string{"id", "goroutines", "simulations", "duration", "max_depth", "c_puct", "temperature"}, rows[0])
	require.Equal(t, []string{"1", "1", "50", "0s", "4", "1.6", "0"}, rows[1])
	require.Equal(t, []string{"2", "4", "0", "50ms", "4", "1.6", "0.5"}, rows[2])
}

func TestWriteBattleRecords(t *testing.T) {
	w := &Writer{baseDir: t.TempDir()}
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	records := []BattleRecord{{
		ID:    "battle-1",
		Agent: 3,
		BattleMetric: BattleMetric{
			Winner:    "us",
			Turns:     42,
			StartTime: start,
			EndTime:   start.Add(2 * time.Second),
			Duration:  2 * time.Second,
		},
	}}

	require.NoError(t, w.WriteBattleRecords(records))

	rows := readCSV(t, w.baseDir, "battle_records.csv")
	require.Len(t, rows, 2)
	require.Equal(t, []string{"id", "agent", "winner", "turns", "start_time", "end_time", "duration"}, rows[0])
	require.Equal(t, "battle-1", rows[1][0])
	require.Equal(t, "3", rows[1][1])
	require.Equal(t, "us", rows[1][2])
	require.Equal(t, "42", rows[1][3])
	require.Equal(t, "2026-08-30T12:00:00Z", rows[1][4])
	require.Equal(t, "2s", rows[1][6])
}

func TestWriteDecisionRecords(t *testing.T) {
	w := &Writer{baseDir: t.TempDir()}
	records := []DecisionRecord{{
		Battle: "battle-1",
		DecisionMetric: DecisionMetric{
			Turn:      7,
			Action:    "move earthquake",
			RootValue: 0.25,
			SearchMetric: searcher.SearchMetric{
				Goroutines:  4,
				Duration:    15 * time.Millisecond,
				Simulations: 800,
				Fallbacks:   2,
				Terminals:   13,
			},
		},
	}}

	require.NoError(t, w.WriteDecisionRecords(records))

	rows := readCSV(t, w.baseDir, "decision_records.csv")
	require.Len(t, rows, 2)
	require.Equal(t, []string{"battle", "turn", "action", "root_value", "goroutines", "duration", "simulations", "fallbacks", "terminals"}, rows[0])
	require.Equal(t, []string{"battle-1", "7", "move earthquake", "0.25", "4", "15ms", "800", "2", "13"}, rows[1])
}
