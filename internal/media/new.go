package media

import (
	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
	"github.com/riddler9999/recapflow/pkg/executor"
)

type implToolkit struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Toolkit backed by the configured ffmpeg/ffprobe binaries.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Toolkit {
	return &implToolkit{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
