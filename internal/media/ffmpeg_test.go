package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
)

// recordingExecutor captures every command invocation instead of running it.
type recordingExecutor struct {
	calls [][]string
}

func (e *recordingExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	e.calls = append(e.calls, append([]string{name}, args...))
	return "", nil
}

func (e *recordingExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	e.calls = append(e.calls, append([]string{name}, args...))
	return "", nil
}

func newTestToolkit(t *testing.T) (*implToolkit, *recordingExecutor) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Whisper.ModelPath = "model.bin"
	cfg.Whisper.BinaryPath = "whisper"
	cfg.Paths.Uploads = t.TempDir()
	cfg.Paths.Output = t.TempDir()
	require.NoError(t, cfg.Validate())
	exec := &recordingExecutor{}
	return New(cfg, exec, logger.New("error")).(*implToolkit), exec
}

// argAfter returns the value following the nth occurrence of flag.
func argAfter(args []string, flag string, n int) string {
	seen := 0
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			if seen == n {
				return args[i+1]
			}
			seen++
		}
	}
	return ""
}

func TestExtractClipFreezePadInsideOutputWindow(t *testing.T) {
	toolkit, exec := newTestToolkit(t)

	// 3s of footage, 5s of narration overhang held as a freeze frame.
	require.NoError(t, toolkit.ExtractClip(context.Background(), "movie.mp4", 10, 3, 5, "clip.mp4"))
	require.Len(t, exec.calls, 1)
	args := exec.calls[0]

	// The input read stops at the cut so tpad clones the cut's last
	// frame, and the output window covers footage plus pad.
	inputIdx := -1
	for i, a := range args {
		if a == "-i" {
			inputIdx = i
			break
		}
	}
	require.Greater(t, inputIdx, 0)
	assert.Equal(t, "3.000", argAfter(args[:inputIdx], "-t", 0), "input-side -t bounds the decode at the cut")
	assert.Equal(t, "8.000", argAfter(args[inputIdx:], "-t", 0), "output -t covers footage plus freeze pad")

	vf := argAfter(args, "-vf", 0)
	assert.Contains(t, vf, "tpad=stop_mode=clone:stop_duration=5.000")
}

func TestExtractClipNoPad(t *testing.T) {
	toolkit, exec := newTestToolkit(t)

	require.NoError(t, toolkit.ExtractClip(context.Background(), "movie.mp4", 20, 4, 0, "clip.mp4"))
	require.Len(t, exec.calls, 1)
	args := exec.calls[0]

	assert.NotContains(t, argAfter(args, "-vf", 0), "tpad")
	assert.Equal(t, "4.000", argAfter(args, "-t", 0))
	assert.Equal(t, "4.000", argAfter(args, "-t", 1))
}

func TestTitleCardEscapesDrawtext(t *testing.T) {
	toolkit, exec := newTestToolkit(t)

	require.NoError(t, toolkit.TitleCard(context.Background(), `50% off: it's A\B`, 3, "card.mp4"))
	require.NotEmpty(t, exec.calls)

	vf := argAfter(exec.calls[0], "-vf", 0)
	assert.Contains(t, vf, `\%`)
	assert.Contains(t, vf, `\:`)
	assert.Contains(t, vf, `'\''`)
	assert.Contains(t, vf, `\\`)
	assert.True(t, strings.HasPrefix(vf, "drawtext=text="))
}

func TestWriteConcatList(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "clip_000.mp4")
	b := filepath.Join(dir, "clip_001.mp4")

	listDir, listName, err := writeConcatList([]string{a, b}, "clips-*.txt")
	require.NoError(t, err)
	listPath := filepath.Join(listDir, listName)
	defer os.Remove(listPath)

	data, err := os.ReadFile(listPath)
	require.NoError(t, err)

	assert.Equal(t,
		"file '"+a+"'\nfile '"+b+"'\n",
		string(data))
}

func TestWriteConcatListEscapesQuotes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "it's a clip.mp4")

	listDir, listName, err := writeConcatList([]string{path}, "clips-*.txt")
	require.NoError(t, err)
	listPath := filepath.Join(listDir, listName)
	defer os.Remove(listPath)

	data, err := os.ReadFile(listPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `'\''`)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "2.000", formatSeconds(2))
	assert.Equal(t, "0.500", formatSeconds(0.5))
	assert.Equal(t, "119.999", formatSeconds(119.999))
}
