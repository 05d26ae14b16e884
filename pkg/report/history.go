package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// HistoricalEntry is one run in the history log.
type HistoricalEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	RunID            string    `json:"run_id"`
	Passed           bool      `json:"passed"`
	Duration         string    `json:"duration"`
	AssertionsPassed int       `json:"assertions_passed"`
	AssertionsTotal  int       `json:"assertions_total"`
	ResultsPath      string    `json:"results_path,omitempty"`
}

// AppendToHistory adds an entry for summary to the history log
// at historyPath. Each entry is a single JSON line.
func AppendToHistory(
	historyPath string,
	summary *Summary,
	resultsPath string,
) error {
	entry := HistoricalEntry{
		Timestamp:        summary.GeneratedAt,
		RunID:            summary.RunID,
		Passed:           summary.Passed(),
		Duration:         summary.Duration.String(),
		AssertionsPassed: summary.Totals.AssertionsPassed,
		AssertionsTotal:  summary.Totals.Assertions,
		ResultsPath:      resultsPath,
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
		return fmt.Errorf(
			"failed to create history directory: %w", err,
		)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}

// LoadHistory reads every entry from the history log. A missing
// file yields an empty history.
func LoadHistory(historyPath string) ([]HistoricalEntry, error) {
	file, err := os.Open(historyPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	var entries []HistoricalEntry
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e HistoricalEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf(
				"invalid history entry on line %d: %w", line, err,
			)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed to read history file: %w", err,
		)
	}
	return entries, nil
}
