package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	return path
}

func TestRunBucketsByDay(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	touch(t, src, "S_Ri_set2_day14_20250527-103422_013.tif")
	touch(t, src, "S_Ri_set2_day3_20250516-090000_001.tif")
	touch(t, src, "calibration.tif")
	touch(t, src, "notes.txt")

	res, err := New(dst, Options{}, zap.NewNop()).Run(src)
	require.NoError(t, err)

	assert.Len(t, res.Moves, 3)
	assert.Equal(t, 1, res.Unsorted)
	assert.Equal(t, 1, res.Skipped)

	assert.FileExists(t, filepath.Join(dst, "day14", "S_Ri_set2_day14_20250527-103422_013.tif"))
	assert.FileExists(t, filepath.Join(dst, "day3", "S_Ri_set2_day3_20250516-090000_001.tif"))
	assert.FileExists(t, filepath.Join(dst, "unsorted", "calibration.tif"))

	// Moved, not copied.
	assert.NoFileExists(t, filepath.Join(src, "S_Ri_set2_day14_20250527-103422_013.tif"))
	// Non-tif files stay put.
	assert.FileExists(t, filepath.Join(src, "notes.txt"))
}

func TestRunCopy(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	touch(t, src, "S_Ri_day2_001.tif")

	_, err := New(dst, Options{Copy: true}, zap.NewNop()).Run(src)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(src, "S_Ri_day2_001.tif"))
	assert.FileExists(t, filepath.Join(dst, "day2", "S_Ri_day2_001.tif"))
}

func TestRunDryRun(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	touch(t, src, "S_Ri_day2_001.tif")

	res, err := New(dst, Options{DryRun: true}, zap.NewNop()).Run(src)
	require.NoError(t, err)

	require.Len(t, res.Moves, 1)
	assert.Equal(t, "day2", res.Moves[0].Bucket)
	assert.FileExists(t, filepath.Join(src, "S_Ri_day2_001.tif"))
	assert.NoDirExists(t, filepath.Join(dst, "day2"))
}

func TestPlaceCollisionSuffix(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	org := New(dst, Options{Copy: true}, zap.NewNop())

	path := touch(t, src, "S_Ri_day2_001.tif")
	for i := 0; i < 3; i++ {
		_, err := org.Place(path)
		require.NoError(t, err)
	}

	assert.FileExists(t, filepath.Join(dst, "day2", "S_Ri_day2_001.tif"))
	assert.FileExists(t, filepath.Join(dst, "day2", "S_Ri_day2_001 (1).tif"))
	assert.FileExists(t, filepath.Join(dst, "day2", "S_Ri_day2_001 (2).tif"))
}

func TestIsTif(t *testing.T) {
	assert.True(t, isTif("a.tif"))
	assert.True(t, isTif("a.TIFF"))
	assert.False(t, isTif("a.png"))
	assert.False(t, isTif("tif"))
}
