package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/riddler9999/recapflow/internal/job"
	"github.com/riddler9999/recapflow/internal/recap"
	"github.com/riddler9999/recapflow/internal/store"
)

// stage couples a pipeline state with its work and progress checkpoint.
type stage struct {
	status   job.Status
	progress int
	run      func(ctx context.Context, id string) error
}

// nextStage returns the stage that follows the given state, or nil for
// terminal states.
func (o *implOrchestrator) nextStage(current job.Status) *stage {
	switch current {
	case job.StatusUploaded:
		return &stage{job.StatusExtractingAudio, 20, o.stageExtractAudio}
	case job.StatusExtractingAudio:
		return &stage{job.StatusTranscribing, 40, o.stageTranscribe}
	case job.StatusTranscribing:
		return &stage{job.StatusGeneratingScript, 55, o.stageScript}
	case job.StatusGeneratingScript:
		return &stage{job.StatusSelectingScenes, 70, o.stageScenes}
	case job.StatusSelectingScenes:
		return &stage{job.StatusGeneratingVoiceover, 80, o.stageVoiceover}
	case job.StatusGeneratingVoiceover:
		return &stage{job.StatusCompiling, 100, o.stageCompile}
	default:
		return nil
	}
}

// Create registers a new job for the uploaded source file.
func (o *implOrchestrator) Create(ctx context.Context, sourcePath, filename, title, genre string) (job.Snapshot, error) {
	id := uuid.NewString()

	workDir := filepath.Join(o.cfg.Paths.Output, id)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return job.Snapshot{}, fmt.Errorf("create work dir: %w", err)
	}

	j := &job.Job{
		ID:         id,
		Status:     job.StatusUploaded,
		Progress:   0,
		SourcePath: sourcePath,
		Filename:   filename,
		Title:      title,
		Genre:      genre,
		WorkDir:    workDir,
		CreatedAt:  time.Now(),
	}
	o.registry.Add(j)

	if err := o.persist(ctx, id); err != nil {
		o.logger.Warn(ctx, "Failed to journal new job %s: %v", id, err)
	}

	o.logger.Info(ctx, "Job created: %s (%q, %s)", id, title, genre)
	return j.Snapshot(), nil
}

// Advance drives exactly one stage. The per-job token guarantees at most one
// concurrent advance per job; status reads are never blocked by it.
func (o *implOrchestrator) Advance(ctx context.Context, id string) (job.Snapshot, error) {
	if err := o.registry.TryAcquire(id); err != nil {
		return job.Snapshot{}, err
	}
	defer o.registry.Release(id)

	snap, err := o.registry.Snapshot(id)
	if err != nil {
		return job.Snapshot{}, err
	}
	if snap.Status.Terminal() {
		return snap, nil
	}

	st := o.nextStage(snap.Status)
	if st == nil {
		return snap, fmt.Errorf("%w: no stage after %s", recap.ErrInvalidState, snap.Status)
	}

	if err := o.registry.Update(id, func(j *job.Job) {
		j.Status = st.status
	}); err != nil {
		return job.Snapshot{}, err
	}

	o.logger.Info(ctx, "Job %s: %s", id, st.status)

	if err := st.run(ctx, id); err != nil {
		return o.fail(ctx, id, st.status, err)
	}

	if err := o.registry.Update(id, func(j *job.Job) {
		if st.progress > j.Progress {
			j.Progress = st.progress
		}
		if st.status == job.StatusCompiling {
			j.Status = job.StatusCompleted
			j.CompletedAt = time.Now()
		}
	}); err != nil {
		return job.Snapshot{}, err
	}

	if err := o.persist(ctx, id); err != nil {
		o.logger.Warn(ctx, "Failed to journal job %s after %s: %v", id, st.status, err)
	}

	if st.status == job.StatusCompiling {
		o.cleanupIntermediates(ctx, id)
	}

	return o.registry.Snapshot(id)
}

// Run advances until terminal. Stage boundaries are the cancellation points.
func (o *implOrchestrator) Run(ctx context.Context, id string) {
	for {
		if ctx.Err() != nil {
			o.logger.Warn(ctx, "Run loop for job %s stopped: %v", id, ctx.Err())
			return
		}

		snap, err := o.Advance(ctx, id)
		if err != nil {
			if !errors.Is(err, recap.ErrJobBusy) {
				o.logger.Error(ctx, "Job %s advance failed: %v", id, err)
			}
			return
		}
		if snap.Status.Terminal() {
			if snap.Status == job.StatusCompleted {
				o.logger.Info(ctx, "Job %s completed", id)
			}
			return
		}
	}
}

func (o *implOrchestrator) Status(id string) (job.Snapshot, error) {
	return o.registry.Snapshot(id)
}

func (o *implOrchestrator) List() []job.Snapshot {
	return o.registry.List()
}

func (o *implOrchestrator) Result(id string) (string, error) {
	var path string
	var status job.Status
	if err := o.registry.View(id, func(j *job.Job) {
		path = j.OutputPath
		status = j.Status
	}); err != nil {
		return "", err
	}
	if status != job.StatusCompleted || path == "" {
		return "", recap.ErrNotReady
	}
	return path, nil
}

func (o *implOrchestrator) ScriptText(id string) (string, string, error) {
	var title, narration string
	if err := o.registry.View(id, func(j *job.Job) {
		if j.Script != nil {
			title = j.Script.Title
			narration = j.Script.Narration()
		}
	}); err != nil {
		return "", "", err
	}
	if narration == "" {
		return "", "", recap.ErrNotReady
	}
	return title, narration, nil
}

func (o *implOrchestrator) Transcript(id string) ([]recap.TranscriptSegment, error) {
	var segments []recap.TranscriptSegment
	if err := o.registry.View(id, func(j *job.Job) {
		segments = append(segments, j.Transcript...)
	}); err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, recap.ErrNotReady
	}
	return segments, nil
}

// fail is the single point converting stage errors into the terminal failed
// state.
func (o *implOrchestrator) fail(ctx context.Context, id string, at job.Status, cause error) (job.Snapshot, error) {
	o.logger.Error(ctx, "Job %s failed during %s: %v", id, at, cause)

	if err := o.registry.Update(id, func(j *job.Job) {
		j.Status = job.StatusFailed
		j.Error = fmt.Sprintf("%s: %v", at, cause)
		j.CompletedAt = time.Now()
	}); err != nil {
		return job.Snapshot{}, err
	}

	if err := o.persist(ctx, id); err != nil {
		o.logger.Warn(ctx, "Failed to journal failure of job %s: %v", id, err)
	}

	return o.registry.Snapshot(id)
}

// persist journals the job's committed state.
func (o *implOrchestrator) persist(ctx context.Context, id string) error {
	if o.journal == nil {
		return nil
	}

	var rec store.Record
	if err := o.registry.View(id, func(j *job.Job) {
		rec = store.Record{
			ID:         j.ID,
			Status:     j.Status,
			Progress:   j.Progress,
			Title:      j.Title,
			Genre:      j.Genre,
			Filename:   j.Filename,
			SourcePath: j.SourcePath,
			OutputPath: j.OutputPath,
			Error:      j.Error,
			CreatedAt:  j.CreatedAt,
		}
	}); err != nil {
		return err
	}

	return o.journal.Upsert(ctx, rec)
}

// Restore reloads journaled jobs after a restart. Uploaded jobs are
// resumable; jobs caught mid-pipeline surface as failed so no partial
// artifact is ever exposed.
func (o *implOrchestrator) Restore(ctx context.Context) error {
	if o.journal == nil {
		return nil
	}

	records, err := o.journal.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore jobs: %w", err)
	}

	for _, rec := range records {
		j := &job.Job{
			ID:         rec.ID,
			Status:     rec.Status,
			Progress:   rec.Progress,
			Title:      rec.Title,
			Genre:      rec.Genre,
			Filename:   rec.Filename,
			SourcePath: rec.SourcePath,
			OutputPath: rec.OutputPath,
			Error:      rec.Error,
			WorkDir:    filepath.Join(o.cfg.Paths.Output, rec.ID),
			CreatedAt:  rec.CreatedAt,
		}

		if !j.Status.Terminal() && j.Status != job.StatusUploaded {
			j.Error = fmt.Sprintf("interrupted during %s by service restart", j.Status)
			j.Status = job.StatusFailed
		}

		o.registry.Add(j)
		if err := o.persist(ctx, j.ID); err != nil {
			o.logger.Warn(ctx, "Failed to journal restored job %s: %v", j.ID, err)
		}
	}

	o.logger.Info(ctx, "Restored %d jobs from journal", len(records))
	return nil
}
