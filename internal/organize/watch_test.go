package organize

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcherInitialPass(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := t.TempDir()
	dst := t.TempDir()
	touch(t, src, "S_Ri_day5_001.tif")

	w := NewWatcher(New(dst, Options{}, zap.NewNop()), src, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	err := w.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	// The pre-existing file was placed by the initial pass, not the event
	// loop, so no settle delay applies.
	assert.FileExists(t, filepath.Join(dst, "day5", "S_Ri_day5_001.tif"))
}

func TestWatcherRunMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWatcher(New(t.TempDir(), Options{}, zap.NewNop()), filepath.Join(t.TempDir(), "gone"), zap.NewNop())
	err := w.Run(context.Background())
	require.Error(t, err)
}

func TestScheduleDebounce(t *testing.T) {
	w := NewWatcher(New(t.TempDir(), Options{}, zap.NewNop()), t.TempDir(), zap.NewNop())

	w.schedule("/scans/a.tif")
	w.schedule("/scans/a.tif")
	w.schedule("/scans/b.tif")

	w.mu.Lock()
	assert.Len(t, w.pending, 2)
	w.mu.Unlock()

	w.drain()

	w.mu.Lock()
	assert.Empty(t, w.pending)
	w.mu.Unlock()
}
