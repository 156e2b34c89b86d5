package watcher

import "context"

// Watcher monitors the drop folder and ingests new movie files as recap jobs.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// IngestFunc registers a dropped file as a job and runs its pipeline.
type IngestFunc func(ctx context.Context, filePath string) error
