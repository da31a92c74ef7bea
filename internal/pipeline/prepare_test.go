package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vizmo/internal/sleap"
)

func TestPrepareSeries(t *testing.T) {
	dir := t.TempDir()
	inputs := []Input{
		{Path: "p.json", RootType: RootPrimary, Labels: primaryLabels("/videos/a.mp4")},
		{Path: "l.json", RootType: RootLateral, Labels: primaryLabels("/videos/a.mp4")},
	}

	prep, err := PrepareSeries(inputs, dir, false, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, dir, prep.Dir)
	assert.Empty(t, prep.Skipped)
	require.Len(t, prep.Pipelines, 2)
	assert.Equal(t, "DicotPipeline", prep.Pipelines[0].Name)

	for rt, want := range map[RootType]string{
		RootPrimary: "combined_primary.slp.json",
		RootLateral: "combined_lateral.slp.json",
	} {
		path, ok := prep.Files[rt]
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, want), path)
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
}

func TestPrepareSeriesFirstPerTypeWins(t *testing.T) {
	dir := t.TempDir()
	inputs := []Input{
		{Path: "first.json", RootType: RootPrimary, Labels: primaryLabels("/videos/a.mp4")},
		{Path: "second.json", RootType: RootPrimary, Labels: primaryLabels("/videos/b.mp4")},
	}

	prep, err := PrepareSeries(inputs, dir, false, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"second.json"}, prep.Skipped)
	require.Len(t, prep.Files, 1)

	// The first file's single video is what got written.
	saved, err := sleap.Load(prep.Files[RootPrimary])
	require.NoError(t, err)
	assert.Len(t, saved.Videos, 1)
}

func TestPrepareSeriesMerge(t *testing.T) {
	dir := t.TempDir()
	inputs := []Input{
		{Path: "first.json", RootType: RootPrimary, Labels: primaryLabels("/videos/a.mp4")},
		{Path: "second.json", RootType: RootPrimary, Labels: primaryLabels("/videos/b.mp4")},
	}

	prep, err := PrepareSeries(inputs, dir, true, zap.NewNop())
	require.NoError(t, err)

	assert.Empty(t, prep.Skipped)
	require.Len(t, prep.Files, 1)

	saved, err := sleap.Load(prep.Files[RootPrimary])
	require.NoError(t, err)
	assert.Len(t, saved.Videos, 2)
	assert.Len(t, saved.LabeledFrames, 2)
	assert.Len(t, saved.Skeletons, 1)
}

func TestPrepareSeriesErrors(t *testing.T) {
	_, err := PrepareSeries(nil, t.TempDir(), false, zap.NewNop())
	assert.ErrorContains(t, err, "no input files")

	// Lateral plus crown matches no pipeline.
	inputs := []Input{
		{Path: "l.json", RootType: RootLateral, Labels: primaryLabels("/videos/a.mp4")},
		{Path: "c.json", RootType: RootCrown, Labels: primaryLabels("/videos/a.mp4")},
	}
	_, err = PrepareSeries(inputs, t.TempDir(), false, zap.NewNop())
	assert.ErrorContains(t, err, "no compatible pipeline")
}
