package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SummaryFile is the run manifest written next to the generated artifacts.
const SummaryFile = "processing_summary.json"

// RunSummary records what a roots processing run produced, so a run
// directory is self-describing months later.
type RunSummary struct {
	Timestamp           string            `json:"timestamp"`
	OutputDirectory     string            `json:"output_directory"`
	InputFiles          map[string]string `json:"input_files"`
	SeriesProcessed     int               `json:"series_processed"`
	PipelineUsed        string            `json:"pipeline_used"`
	ExpectedCountsCSV   string            `json:"expected_count_csv,omitempty"`
	ExpectedTotalPlants int               `json:"expected_total_plants"`
	SeriesSummaryCSV    string            `json:"series_summary_csv,omitempty"`
	SummaryColumns      []string          `json:"summary_columns,omitempty"`
}

// WriteSummary saves the run summary as indented JSON in the run directory
// and returns its path.
func WriteSummary(s RunSummary, dir string) (string, error) {
	path := filepath.Join(dir, SummaryFile)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write run summary: %w", err)
	}
	return path, nil
}
