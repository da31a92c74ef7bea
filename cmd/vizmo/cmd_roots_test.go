package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vizmo/internal/config"
	"vizmo/internal/pipeline"
	"vizmo/internal/store"
)

// setupCommandGlobals points the package-level config and logger at a temp
// workspace so RunE functions can be called directly.
func setupCommandGlobals(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	cfg = config.DefaultConfig()
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.DatabasePath = filepath.Join(dir, "vizmo.db")
	logger = zap.NewNop()
}

func recordedRuns(t *testing.T) []store.Run {
	t.Helper()
	s, err := store.Open(cfg.DatabasePath)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Recent(10)
	require.NoError(t, err)
	return runs
}

func TestRunRootsCombineWritesProcessingSummary(t *testing.T) {
	setupCommandGlobals(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "S_Ri_set2_all_plants_traits.csv"),
		[]byte("plant_idx,root_length\n0,12.5\n1,9.8\n"), 0644))
	countsPath := filepath.Join(dir, "expected_plant_counts.csv")
	require.NoError(t, os.WriteFile(countsPath,
		[]byte("plant_qr_code,genotype,replicate\nS_Ri_set2,S_Ri,2\n"), 0644))

	combineDir = dir
	combinePattern = ""
	combineCounts = countsPath
	require.NoError(t, runRootsCombine(rootsCombineCmd, nil))

	data, err := os.ReadFile(filepath.Join(dir, pipeline.SummaryFile))
	require.NoError(t, err)

	var summary pipeline.RunSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, dir, summary.OutputDirectory)
	assert.Equal(t, 1, summary.SeriesProcessed)
	assert.Equal(t, countsPath, summary.ExpectedCountsCSV)
	assert.True(t, strings.Contains(summary.SeriesSummaryCSV, "final_series_summary_with_metadata_"))
	assert.FileExists(t, summary.SeriesSummaryCSV)
	assert.Contains(t, summary.SummaryColumns, "series_name")
	assert.Contains(t, summary.SummaryColumns, "genotype")

	runs := recordedRuns(t)
	require.Len(t, runs, 1)
	assert.Equal(t, "roots combine", runs[0].Command)
	assert.Equal(t, "ok", runs[0].Status)
	// Combined CSV, merged CSV, and the summary manifest.
	assert.Equal(t, 3, runs[0].Artifacts)
}

func TestRunRootsCombineWithoutCounts(t *testing.T) {
	setupCommandGlobals(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "K_mock_set1_all_plants_traits.csv"),
		[]byte("plant_idx,root_length\n0,7.1\n"), 0644))

	combineDir = dir
	combinePattern = ""
	combineCounts = ""
	require.NoError(t, runRootsCombine(rootsCombineCmd, nil))

	data, err := os.ReadFile(filepath.Join(dir, pipeline.SummaryFile))
	require.NoError(t, err)

	var summary pipeline.RunSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Empty(t, summary.ExpectedCountsCSV)
	assert.True(t, strings.Contains(summary.SeriesSummaryCSV, "series_summary_statistics_"))
	assert.Contains(t, summary.SummaryColumns, "root_length")
}

func TestRunRootsCombineNoMatchesStillRecorded(t *testing.T) {
	setupCommandGlobals(t)

	combineDir = t.TempDir()
	combinePattern = ""
	combineCounts = ""
	require.NoError(t, runRootsCombine(rootsCombineCmd, nil))

	runs := recordedRuns(t)
	require.Len(t, runs, 1)
	assert.Equal(t, "ok", runs[0].Status)
	assert.Equal(t, 0, runs[0].Artifacts)
}
