package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	outputWidth  = 1280
	outputHeight = 720
	outputFPS    = 30
)

// ExtractAudio extracts the audio track as 16kHz mono PCM WAV, the format
// whisper expects.
func (t *implToolkit) ExtractAudio(ctx context.Context, videoPath, outDir string) (string, error) {
	audioPath := filepath.Join(outDir, "audio.wav")

	t.logger.Info(ctx, "Extracting audio: %s", videoPath)

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	t.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}

// ExtractClip cuts one scene, silent, scaled and padded to the output frame.
// A positive freezePad holds the last frame via tpad so narration that runs
// longer than the footage stays covered. The input read is bounded with an
// input-side -t so tpad clones the cut's last frame, not the movie's; the
// output window then covers footage plus pad.
func (t *implToolkit) ExtractClip(ctx context.Context, videoPath string, start, duration, freezePad float64, outPath string) error {
	vf := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		outputWidth, outputHeight, outputWidth, outputHeight,
	)
	if freezePad > 0 {
		vf += fmt.Sprintf(",tpad=stop_mode=clone:stop_duration=%.3f", freezePad)
	}

	args := []string{
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-i", videoPath,
		"-t", formatSeconds(duration+freezePad),
		"-vf", vf,
		"-r", strconv.Itoa(outputFPS),
		"-c:v", "libx264",
		"-preset", t.cfg.FFmpeg.Preset,
		"-crf", strconv.Itoa(t.cfg.FFmpeg.CRF),
		"-pix_fmt", "yuv420p",
		"-an",
		"-y",
		outPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg extract clip at %.1fs: %w", start, err)
	}
	return nil
}

// drawtextEscaper neutralizes the characters drawtext interprets inside the
// single-quoted text value: backslash and percent drive its text expansion,
// the quote ends the filter-level quoting.
var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `'\''`,
	`:`, `\:`,
	`%`, `\%`,
)

// TitleCard renders a centered-text card on a black background.
func (t *implToolkit) TitleCard(ctx context.Context, text string, duration float64, outPath string) error {
	escaped := drawtextEscaper.Replace(text)

	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=%dx%d:d=%.2f:r=%d", outputWidth, outputHeight, duration, outputFPS),
		"-vf", fmt.Sprintf("drawtext=text='%s':fontsize=56:fontcolor=white:x=(w-text_w)/2:y=(h-text_h)/2:borderw=3:bordercolor=black", escaped),
		"-c:v", "libx264",
		"-preset", t.cfg.FFmpeg.Preset,
		"-pix_fmt", "yuv420p",
		"-y",
		outPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		t.logger.Warn(ctx, "Title card with text failed, falling back to plain card: %v", err)
		// Fall back to a plain card when the drawtext font is unavailable
		plain := []string{
			"-f", "lavfi",
			"-i", fmt.Sprintf("color=c=black:s=%dx%d:d=%.2f:r=%d", outputWidth, outputHeight, duration, outputFPS),
			"-c:v", "libx264",
			"-preset", t.cfg.FFmpeg.Preset,
			"-pix_fmt", "yuv420p",
			"-y",
			outPath,
		}
		if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, plain...); err != nil {
			return fmt.Errorf("ffmpeg title card: %w", err)
		}
	}
	return nil
}

// Silence writes a silent mono WAV used to pad the narration track under
// freeze-frame segments.
func (t *implToolkit) Silence(ctx context.Context, duration float64, outPath string) error {
	args := []string{
		"-f", "lavfi",
		"-i", "anullsrc=r=24000:cl=mono",
		"-t", formatSeconds(duration),
		"-c:a", "pcm_s16le",
		"-y",
		outPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg silence: %w", err)
	}
	return nil
}

// TrimAudio cuts a narration clip to duration and normalizes it to the
// 24kHz mono WAV format the concat step expects.
func (t *implToolkit) TrimAudio(ctx context.Context, inPath string, duration float64, outPath string) error {
	args := []string{
		"-i", inPath,
		"-t", formatSeconds(duration),
		"-ar", "24000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		outPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg trim audio: %w", err)
	}
	return nil
}

// ConcatClips joins clips with the concat demuxer. The list file uses paths
// relative to its own directory, so the command runs there.
func (t *implToolkit) ConcatClips(ctx context.Context, clipPaths []string, outPath string) error {
	dir, listName, err := writeConcatList(clipPaths, "clips-*.txt")
	if err != nil {
		return err
	}
	defer os.Remove(filepath.Join(dir, listName))

	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listName,
		"-c:v", "libx264",
		"-preset", t.cfg.FFmpeg.Preset,
		"-crf", strconv.Itoa(t.cfg.FFmpeg.CRF),
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(outputFPS),
		"-an",
		"-y",
		absOut,
	}

	if _, err := t.executor.ExecuteInDir(ctx, dir, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg concat clips: %w", err)
	}
	return nil
}

// ConcatAudio joins narration and silence clips into the global voice track.
func (t *implToolkit) ConcatAudio(ctx context.Context, audioPaths []string, outPath string) error {
	dir, listName, err := writeConcatList(audioPaths, "audio-*.txt")
	if err != nil {
		return err
	}
	defer os.Remove(filepath.Join(dir, listName))

	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listName,
		"-ar", "24000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		absOut,
	}

	if _, err := t.executor.ExecuteInDir(ctx, dir, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg concat audio: %w", err)
	}
	return nil
}

// AddVoiceover muxes the narration track over the assembled visuals.
func (t *implToolkit) AddVoiceover(ctx context.Context, videoPath, audioPath, outPath string) error {
	args := []string{
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-shortest",
		"-y",
		outPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg add voiceover: %w", err)
	}
	return nil
}

// writeConcatList writes an ffmpeg concat list into a temp dir and returns
// the dir plus the list's name within it. Entries are absolute paths.
func writeConcatList(paths []string, pattern string) (dir, name string, err error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", "", fmt.Errorf("create concat list: %w", err)
	}
	defer f.Close()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", "", fmt.Errorf("resolve clip path: %w", err)
		}
		escaped := strings.ReplaceAll(abs, "'", "'\\''")
		if _, err := fmt.Fprintf(f, "file '%s'\n", escaped); err != nil {
			return "", "", fmt.Errorf("write concat list: %w", err)
		}
	}

	return filepath.Dir(f.Name()), filepath.Base(f.Name()), nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
