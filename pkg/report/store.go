package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveSummary writes the summary as JSON and as plain text into
// outputDir and points latest_summary.{json,txt} at them. It
// returns the path of the JSON file.
func SaveSummary(summary *Summary, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	base := fmt.Sprintf(
		"summary_%s_%s",
		summary.GeneratedAt.Format("20060102_150405"),
		summary.RunID,
	)

	jsonPath := filepath.Join(outputDir, base+".json")
	jsonData, err := GenerateJSON(summary, true)
	if err != nil {
		return "", fmt.Errorf(
			"failed to marshal summary: %w", err,
		)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf(
			"failed to write JSON summary: %w", err,
		)
	}

	txtPath := filepath.Join(outputDir, base+".txt")
	if err := os.WriteFile(
		txtPath, []byte(CompletedText(summary)+"\n"), 0644,
	); err != nil {
		return "", fmt.Errorf(
			"failed to write text summary: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestTxt := filepath.Join(outputDir, "latest_summary.txt")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestTxt)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(txtPath), latestTxt)

	return jsonPath, nil
}
