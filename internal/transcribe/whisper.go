package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Transcribe runs whisper over the audio file, asking for SRT output, and
// parses the result into ordered transcript segments.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) ([]recap.TranscriptSegment, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Starting transcription (%d threads): %s", t.cfg.Whisper.Threads, audioPath)

	args := []string{
		"-m", t.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", t.cfg.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"--output-file", outputPrefix,
	}
	if t.cfg.Whisper.Prompt != "" {
		args = append(args, "--prompt", t.cfg.Whisper.Prompt)
	}

	if _, err := t.executor.Execute(ctx, t.cfg.Whisper.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	data, err := os.ReadFile(srtPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", srtPath, err)
	}
	defer os.Remove(srtPath)

	segments, err := ParseSRT(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	t.logger.Info(ctx, "Transcription completed: %d segments", len(segments))
	return segments, nil
}
