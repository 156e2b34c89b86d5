package orchestrator

import (
	"context"
	"os"
	"path/filepath"

	"github.com/riddler9999/recapflow/internal/job"
)

// intermediatePatterns are the per-segment work files the render produces.
// The final recap, the narration track and the docx script survive cleanup.
var intermediatePatterns = []string{
	"clip_*.mp4",
	"voice_*.mp3",
	"narration_*.wav",
	"gap_*.wav",
	"card_*.mp4",
	"card_*.wav",
	"recap_video.mp4",
	"audio.wav",
}

// cleanupIntermediates removes per-segment work files once a job completes.
// Best effort: a leftover file is logged, never a failure.
func (o *implOrchestrator) cleanupIntermediates(ctx context.Context, id string) {
	var workDir string
	if err := o.registry.View(id, func(j *job.Job) {
		workDir = j.WorkDir
	}); err != nil {
		return
	}

	removed := 0
	for _, pattern := range intermediatePatterns {
		matches, err := filepath.Glob(filepath.Join(workDir, pattern))
		if err != nil {
			continue
		}
		for _, path := range matches {
			if err := os.Remove(path); err != nil {
				o.logger.Warn(ctx, "Could not remove %s: %v", path, err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		o.logger.Debug(ctx, "Job %s: removed %d intermediate files", id, removed)
	}
}
