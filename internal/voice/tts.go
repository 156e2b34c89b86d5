package voice

import (
	"context"
	"fmt"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Synthesize renders one narration beat to audio and probes its duration.
func (s *implSynthesizer) Synthesize(ctx context.Context, text, outPath string) (recap.VoiceClip, error) {
	args := []string{
		"--voice", s.cfg.TTS.Voice,
		"--text", text,
		"--write-media", outPath,
	}
	if s.cfg.TTS.Rate != "" {
		args = append(args, "--rate", s.cfg.TTS.Rate)
	}

	if _, err := s.executor.Execute(ctx, s.cfg.TTS.BinaryPath, args...); err != nil {
		return recap.VoiceClip{}, fmt.Errorf("synthesize speech: %w", err)
	}

	duration, err := s.media.Duration(ctx, outPath)
	if err != nil {
		return recap.VoiceClip{}, fmt.Errorf("probe voice clip: %w", err)
	}
	if duration <= 0 {
		return recap.VoiceClip{}, fmt.Errorf("voice clip %s has no duration", outPath)
	}

	s.logger.Debug(ctx, "Synthesized %.1fs of narration: %s", duration, outPath)
	return recap.VoiceClip{Path: outPath, Duration: duration}, nil
}
