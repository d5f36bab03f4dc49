package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists one experiment run as CSV files under a timestamped
// directory.
type Writer struct {
	baseDir string
}

func NewWriter(experiment string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", experiment, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	path := filepath.Join(w.baseDir, "agent_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "goroutines", "simulations", "duration", "max_depth", "c_puct", "temperature"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write agent configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.Simulations),
			config.Duration.String(),
			strconv.Itoa(config.MaxDepth),
			strconv.FormatFloat(config.CPuct, 'f', -1, 64),
			strconv.FormatFloat(config.Temperature, 'f', -1, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write agent config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteBattleRecords(records []BattleRecord) error {
	path := filepath.Join(w.baseDir, "battle_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create battle records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "agent", "winner", "turns", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write battle records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			strconv.Itoa(record.Agent),
			record.Winner,
			strconv.Itoa(record.Turns),
			record.StartTime.UTC().Format(time.RFC3339Nano),
			record.EndTime.UTC().Format(time.RFC3339Nano),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write battle record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	path := filepath.Join(w.baseDir, "decision_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create decision records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"battle", "turn", "action", "root_value", "goroutines", "duration", "simulations", "fallbacks", "terminals"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write decision records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Battle,
			strconv.Itoa(record.Turn),
			record.Action,
			strconv.FormatFloat(record.RootValue, 'f', -1, 64),
			strconv.Itoa(record.Goroutines),
			record.Duration.String(),
			strconv.Itoa(record.Simulations),
			strconv.Itoa(record.Fallbacks),
			strconv.Itoa(record.Terminals),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write decision record row: %w", err)
		}
	}

	return nil
}
