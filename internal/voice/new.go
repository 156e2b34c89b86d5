package voice

import (
	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
	"github.com/riddler9999/recapflow/internal/media"
	"github.com/riddler9999/recapflow/pkg/executor"
)

type implSynthesizer struct {
	cfg      *config.Config
	executor executor.Executor
	media    media.Toolkit
	logger   logger.Logger
}

// New creates a Synthesizer backed by the configured TTS binary. Clip
// durations are read back with ffprobe via the media toolkit.
func New(cfg *config.Config, exec executor.Executor, toolkit media.Toolkit, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		cfg:      cfg,
		executor: exec,
		media:    toolkit,
		logger:   log,
	}
}
