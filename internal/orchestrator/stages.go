package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/riddler9999/recapflow/internal/job"
	"github.com/riddler9999/recapflow/internal/recap"
)

func (o *implOrchestrator) stageExtractAudio(ctx context.Context, id string) error {
	var sourcePath, workDir string
	if err := o.registry.View(id, func(j *job.Job) {
		sourcePath = j.SourcePath
		workDir = j.WorkDir
	}); err != nil {
		return err
	}

	duration, err := o.media.Duration(ctx, sourcePath)
	if err != nil {
		return fmt.Errorf("probe source: %w", err)
	}
	if duration <= 0 {
		return fmt.Errorf("source has no measurable duration")
	}

	audioPath, err := o.media.ExtractAudio(ctx, sourcePath, workDir)
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}

	return o.registry.Update(id, func(j *job.Job) {
		j.AudioPath = audioPath
		j.SourceDuration = duration
	})
}

func (o *implOrchestrator) stageTranscribe(ctx context.Context, id string) error {
	var audioPath string
	if err := o.registry.View(id, func(j *job.Job) {
		audioPath = j.AudioPath
	}); err != nil {
		return err
	}

	segments, err := o.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("transcribe: %w: no dialogue found", recap.ErrInsufficientSourceMaterial)
	}
	if err := recap.ValidateTranscript(segments); err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	o.logger.Info(ctx, "Job %s: transcript has %d segments", id, len(segments))

	return o.registry.Update(id, func(j *job.Job) {
		j.Transcript = segments
	})
}

func (o *implOrchestrator) stageScript(ctx context.Context, id string) error {
	var segments []recap.TranscriptSegment
	var title, genre, workDir string
	if err := o.registry.View(id, func(j *job.Job) {
		segments = j.Transcript
		title = j.Title
		genre = j.Genre
		workDir = j.WorkDir
	}); err != nil {
		return err
	}

	scr, err := o.generator.Generate(ctx, segments, title, genre)
	if err != nil {
		return fmt.Errorf("generate script: %w", err)
	}
	if len(scr.Beats) == 0 {
		return fmt.Errorf("generate script: empty script")
	}
	scr.NormalizeDurations()

	// The docx export is a convenience artifact; a failed export never
	// fails the job.
	docPath := filepath.Join(workDir, "recap_script.docx")
	if err := o.generator.ExportDocx(scr, docPath); err != nil {
		o.logger.Warn(ctx, "Job %s: docx export failed: %v", id, err)
		docPath = ""
	}

	return o.registry.Update(id, func(j *job.Job) {
		j.Script = scr
		j.ScriptDocPath = docPath
	})
}

func (o *implOrchestrator) stageScenes(ctx context.Context, id string) error {
	var segments []recap.TranscriptSegment
	var scr *recap.Script
	var sourceDuration float64
	if err := o.registry.View(id, func(j *job.Job) {
		segments = j.Transcript
		scr = j.Script
		sourceDuration = j.SourceDuration
	}); err != nil {
		return err
	}

	cuts, err := o.selector.Select(ctx, segments, scr, sourceDuration)
	if err != nil {
		return fmt.Errorf("select scenes: %w", err)
	}

	if cuts.ChronologyNote != "" {
		o.logger.Warn(ctx, "Job %s: %s", id, cuts.ChronologyNote)
	}

	return o.registry.Update(id, func(j *job.Job) {
		j.CutList = cuts
	})
}

func (o *implOrchestrator) stageVoiceover(ctx context.Context, id string) error {
	var scr *recap.Script
	var workDir string
	if err := o.registry.View(id, func(j *job.Job) {
		scr = j.Script
		workDir = j.WorkDir
	}); err != nil {
		return err
	}

	clips := make([]recap.VoiceClip, 0, len(scr.Beats))
	for i, beat := range scr.Beats {
		outPath := filepath.Join(workDir, fmt.Sprintf("voice_%03d.mp3", i))
		clip, err := o.synthesizer.Synthesize(ctx, beat.Text, outPath)
		if err != nil {
			return fmt.Errorf("synthesize beat %d: %w", i, err)
		}
		clips = append(clips, clip)
	}

	return o.registry.Update(id, func(j *job.Job) {
		j.VoiceClips = clips
	})
}

func (o *implOrchestrator) stageCompile(ctx context.Context, id string) error {
	var cuts *recap.CutList
	var clips []recap.VoiceClip
	if err := o.registry.View(id, func(j *job.Job) {
		cuts = j.CutList
		clips = j.VoiceClips
	}); err != nil {
		return err
	}

	plan, err := o.compiler.Compile(ctx, cuts, clips)
	if err != nil {
		return fmt.Errorf("compile timeline: %w", err)
	}

	outputPath, err := o.render(ctx, id, plan)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return o.registry.Update(id, func(j *job.Job) {
		j.Plan = plan
		j.OutputPath = outputPath
	})
}
