package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/riddler9999/recapflow/internal/job"
	"github.com/riddler9999/recapflow/internal/recap"
)

const (
	introCardDuration = 3.0
	outroCardDuration = 2.0
)

// render turns the plan into the final recap file: one video clip and one
// narration slice per segment, concatenated and muxed.
func (o *implOrchestrator) render(ctx context.Context, id string, plan *recap.RenderPlan) (string, error) {
	if len(plan.Segments) == 0 {
		return "", recap.ErrEmptyRenderPlan
	}

	var workDir, title, srcPath string
	var clips []recap.VoiceClip
	if err := o.registry.View(id, func(j *job.Job) {
		workDir = j.WorkDir
		title = j.Title
		srcPath = j.SourcePath
		clips = j.VoiceClips
	}); err != nil {
		return "", err
	}

	var videoPaths, audioPaths []string

	if o.cfg.Recap.TitleCards {
		cardPath := filepath.Join(workDir, "card_intro.mp4")
		if err := o.media.TitleCard(ctx, title, introCardDuration, cardPath); err != nil {
			return "", fmt.Errorf("intro card: %w", err)
		}
		silencePath := filepath.Join(workDir, "card_intro.wav")
		if err := o.media.Silence(ctx, introCardDuration, silencePath); err != nil {
			return "", fmt.Errorf("intro silence: %w", err)
		}
		videoPaths = append(videoPaths, cardPath)
		audioPaths = append(audioPaths, silencePath)
	}

	for i, seg := range plan.Segments {
		footage := seg.VisualDuration - seg.FreezePad

		clipPath := filepath.Join(workDir, fmt.Sprintf("clip_%03d.mp4", i))
		if err := o.media.ExtractClip(ctx, srcPath, seg.Cut.Start, footage, seg.FreezePad, clipPath); err != nil {
			return "", fmt.Errorf("segment %d clip: %w", i, err)
		}
		videoPaths = append(videoPaths, clipPath)

		if seg.Cut.BeatIndex < 0 || seg.Cut.BeatIndex >= len(clips) {
			return "", fmt.Errorf("segment %d: beat index %d out of range", i, seg.Cut.BeatIndex)
		}
		voicePath := filepath.Join(workDir, fmt.Sprintf("narration_%03d.wav", i))
		if err := o.media.TrimAudio(ctx, clips[seg.Cut.BeatIndex].Path, seg.VoiceDuration, voicePath); err != nil {
			return "", fmt.Errorf("segment %d narration: %w", i, err)
		}
		audioPaths = append(audioPaths, voicePath)

		if gap := seg.VisualDuration - seg.VoiceDuration; gap > 0.01 {
			gapPath := filepath.Join(workDir, fmt.Sprintf("gap_%03d.wav", i))
			if err := o.media.Silence(ctx, gap, gapPath); err != nil {
				return "", fmt.Errorf("segment %d gap: %w", i, err)
			}
			audioPaths = append(audioPaths, gapPath)
		}
	}

	if o.cfg.Recap.TitleCards {
		cardPath := filepath.Join(workDir, "card_outro.mp4")
		if err := o.media.TitleCard(ctx, "The End", outroCardDuration, cardPath); err != nil {
			return "", fmt.Errorf("outro card: %w", err)
		}
		silencePath := filepath.Join(workDir, "card_outro.wav")
		if err := o.media.Silence(ctx, outroCardDuration, silencePath); err != nil {
			return "", fmt.Errorf("outro silence: %w", err)
		}
		videoPaths = append(videoPaths, cardPath)
		audioPaths = append(audioPaths, silencePath)
	}

	videoPath := filepath.Join(workDir, "recap_video.mp4")
	if err := o.media.ConcatClips(ctx, videoPaths, videoPath); err != nil {
		return "", fmt.Errorf("concat clips: %w", err)
	}

	audioPath := filepath.Join(workDir, "recap_narration.wav")
	if err := o.media.ConcatAudio(ctx, audioPaths, audioPath); err != nil {
		return "", fmt.Errorf("concat narration: %w", err)
	}
	plan.AudioTrack = audioPath

	outputPath := filepath.Join(workDir, "final_recap.mp4")
	if err := o.media.AddVoiceover(ctx, videoPath, audioPath, outputPath); err != nil {
		return "", fmt.Errorf("mux voiceover: %w", err)
	}

	return outputPath, nil
}
