package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	rows := Rows(twoFrameProject())
	require.NoError(t, WriteCSV(rows, path))

	records := readCSV(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"S_Ri_set2_day14", "3", "0", "0", "base", "1.5", "2.5"}, records[1])
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(nil, path))

	records := readCSV(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, Header, records[0])
}

func TestMetadataName(t *testing.T) {
	now := time.Date(2025, 5, 27, 10, 34, 22, 0, time.UTC)
	got := MetadataName("/out/labels.csv", 12, 340, now)
	assert.Equal(t, filepath.Join("/out", "labels_12frames_340pts_20250527_103422.csv"), got)
}

func TestRunDir(t *testing.T) {
	base := t.TempDir()

	a, err := RunDir(base, "output")
	require.NoError(t, err)
	b, err := RunDir(base, "output")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	for _, dir := range []string{a, b} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.True(t, strings.HasPrefix(filepath.Base(dir), "output_"))
	}
}

func TestRunDirDefaultPrefix(t *testing.T) {
	dir, err := RunDir(t.TempDir(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(dir), "output_"))
}
