package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/riddler9999/recapflow/internal/logger"
)

// New creates a Watcher over the drop folder. Ingestion runs are bounded by
// maxConcurrent; further drops queue until a slot frees up.
func New(inputDir string, ingest IngestFunc, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", inputDir, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		inputDir: inputDir,
		ingest:   ingest,
		logger:   log,
		watcher:  fsw,
		slots:    make(chan struct{}, maxConcurrent),
	}, nil
}
