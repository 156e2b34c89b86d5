package timeline

import (
	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
)

type implCompiler struct {
	targetDuration float64
	tolerance      float64
	logger         logger.Logger
}

// New creates a Compiler for the configured duration budget.
func New(cfg *config.Config, log logger.Logger) Compiler {
	return &implCompiler{
		targetDuration: cfg.Recap.TargetDuration,
		tolerance:      cfg.Recap.DurationTolerance,
		logger:         log,
	}
}
