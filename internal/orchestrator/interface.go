package orchestrator

import (
	"context"

	"github.com/riddler9999/recapflow/internal/job"
	"github.com/riddler9999/recapflow/internal/recap"
	"github.com/riddler9999/recapflow/internal/store"
)

// Orchestrator owns per-job state and drives the pipeline stage by stage.
type Orchestrator interface {
	// Create registers a new job in the uploaded state.
	Create(ctx context.Context, sourcePath, filename, title, genre string) (job.Snapshot, error)
	// Advance drives exactly one stage forward. Safe to call repeatedly;
	// a terminal job is returned unchanged. Returns recap.ErrJobBusy when
	// another advance is in flight for the same job.
	Advance(ctx context.Context, id string) (job.Snapshot, error)
	// Run advances the job until it reaches a terminal state or ctx ends.
	Run(ctx context.Context, id string)
	// Status returns the last-committed snapshot without blocking on
	// in-flight work.
	Status(id string) (job.Snapshot, error)
	// List returns snapshots of all known jobs.
	List() []job.Snapshot
	// Result returns the output path; recap.ErrNotReady unless completed.
	Result(id string) (string, error)
	// ScriptText returns the recap title and narration text once the
	// script stage has completed.
	ScriptText(id string) (title, narration string, err error)
	// Transcript returns the transcript segments once transcription has
	// completed.
	Transcript(id string) ([]recap.TranscriptSegment, error)
	// Restore reloads journaled jobs at startup. Jobs caught mid-pipeline
	// come back as failed.
	Restore(ctx context.Context) error
}

// Journal persists committed job state between stages.
type Journal interface {
	Upsert(ctx context.Context, rec store.Record) error
	Load(ctx context.Context) ([]store.Record, error)
}
