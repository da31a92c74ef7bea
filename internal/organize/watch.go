package organize

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay is how long a file must stay quiet before it is considered
// fully written. Scanners stream large TIFFs in chunks, so acting on the
// first write event would grab half a file.
const settleDelay = 2 * time.Second

// Watcher keeps organizing scans as they arrive in a directory.
type Watcher struct {
	org *Organizer
	src string
	log *zap.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher returns a Watcher placing new files from src via org.
func NewWatcher(org *Organizer, src string, log *zap.Logger) *Watcher {
	return &Watcher{
		org:     org,
		src:     src,
		log:     log,
		pending: make(map[string]*time.Timer),
	}
}

// Run watches src until ctx is canceled. An initial pass picks up files that
// arrived before the watch started.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.src); err != nil {
		return fmt.Errorf("watch %s: %w", w.src, err)
	}

	if _, err := w.org.Run(w.src); err != nil {
		w.log.Warn("initial organize pass failed", zap.Error(err))
	}

	w.log.Info("watching scan directory", zap.String("src", w.src))
	defer w.drain()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) {
				if isTif(ev.Name) {
					w.schedule(ev.Name)
				}
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// schedule (re)arms the settle timer for a path; each new write pushes the
// placement back until the file goes quiet.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(settleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if _, err := w.org.Place(path); err != nil {
			w.log.Error("failed to place scan", zap.String("path", path), zap.Error(err))
		}
	})
}

// drain stops outstanding settle timers on shutdown.
func (w *Watcher) drain() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}
