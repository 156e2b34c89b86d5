package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/riddler9999/recapflow/internal/logger"
)

// settleInterval is how long a dropped file must stop growing before it is
// considered fully written.
const settleInterval = 2 * time.Second

type implWatcher struct {
	inputDir string
	ingest   IngestFunc
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	slots    chan struct{}
	wg       sync.WaitGroup
}

// Start blocks, ingesting every movie file dropped into the folder until ctx
// is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Drop folder watcher started on %s", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight ingestions to finish")
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			if !isMovieFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-movie file %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New movie dropped: %s", event.Name)

			select {
			case w.slots <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.slots }()

					if err := waitUntilSettled(ctx, path); err != nil {
						w.logger.Warn(ctx, "Skipping %s: %v", path, err)
						return
					}
					if err := w.ingest(ctx, path); err != nil {
						w.logger.Error(ctx, "Failed to ingest %s: %v", path, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying fsnotify watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// waitUntilSettled polls the file size until it stops growing, so a movie
// still being copied in is not ingested half-written.
func waitUntilSettled(ctx context.Context, path string) error {
	var lastSize int64 = -1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(settleInterval):
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat: %w", err)
		}
		if info.Size() == lastSize {
			return nil
		}
		lastSize = info.Size()
	}
}

func isMovieFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mkv", ".avi", ".mov", ".webm", ".wmv":
		return true
	}
	return false
}
