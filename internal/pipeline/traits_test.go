package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCombineTraitCSVs(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "S_Ri_set2_all_plants_traits.csv",
		"plant_idx,root_length\n0,12.5\n1,9.8\n")
	writeCSV(t, dir, "K_mock_set1_all_plants_traits.csv",
		"plant_idx,root_length\n0,7.1\n")
	writeCSV(t, dir, "notes.csv", "a,b\n1,2\n") // not a trait file

	table, path, err := CombineTraitCSVs(dir, "", "20250527_103422")
	require.NoError(t, err)
	require.NotNil(t, table)

	assert.Equal(t, filepath.Join(dir, "series_summary_statistics_20250527_103422.csv"), path)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	require.Len(t, table.Rows, 3)
	assert.Contains(t, table.Columns, "series_name")

	// Glob order is sorted, so the K series rows come first.
	assert.Equal(t, "K_mock_set1", table.Rows[0]["series_name"])
	assert.Equal(t, "S_Ri_set2", table.Rows[1]["series_name"])
	assert.Equal(t, "12.5", table.Rows[1]["root_length"])
}

func TestCombineTraitCSVsNoMatches(t *testing.T) {
	table, path, err := CombineTraitCSVs(t.TempDir(), "", "20250527_103422")
	require.NoError(t, err)
	assert.Nil(t, table)
	assert.Empty(t, path)
}

func TestMergeWithExpected(t *testing.T) {
	dir := t.TempDir()
	traits := &Table{
		Columns: []string{"plant_idx", "root_length", "series_name"},
		Rows: []map[string]string{
			{"plant_idx": "0", "root_length": "12.5", "series_name": "S_Ri_set2"},
			{"plant_idx": "0", "root_length": "7.1", "series_name": "unmatched"},
		},
	}
	expected := &Table{
		Columns: []string{"plant_qr_code", "genotype", "replicate", "number_of_plants_cylinder"},
		Rows: []map[string]string{
			{"plant_qr_code": "S_Ri_set2", "genotype": "S_Ri", "replicate": "2", "number_of_plants_cylinder": "2"},
		},
	}

	merged, path, err := MergeWithExpected(traits, expected, dir, "20250527_103422")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "final_series_summary_with_metadata_20250527_103422.csv"), path)

	// Metadata columns lead.
	assert.Equal(t, "series_name", merged.Columns[0])
	assert.Equal(t, "plant_qr_code", merged.Columns[1])

	require.Len(t, merged.Rows, 2)
	assert.Equal(t, "S_Ri", merged.Rows[0]["genotype"])
	assert.Equal(t, "12.5", merged.Rows[0]["root_length"])

	// Left join: unmatched trait rows survive without metadata.
	assert.Equal(t, "7.1", merged.Rows[1]["root_length"])
	assert.Empty(t, merged.Rows[1]["genotype"])
}

func TestTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	table := &Table{
		Columns: []string{"a", "b"},
		Rows:    []map[string]string{{"a": "1", "b": "2"}},
	}
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, table.Write(path))

	got, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, got.Columns)
	assert.Equal(t, table.Rows, got.Rows)
}

func TestReadTableEmpty(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "empty.csv", "")
	_, err := ReadTable(path)
	assert.ErrorContains(t, err, "empty csv")
}
