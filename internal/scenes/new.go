package scenes

import (
	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
)

type implSelector struct {
	minClip      float64
	maxClip      float64
	clipPad      float64
	minRelevance float64
	logger       logger.Logger
}

// New creates a Selector with the configured clip sizing and relevance
// threshold.
func New(cfg *config.Config, log logger.Logger) Selector {
	return &implSelector{
		minClip:      cfg.Recap.MinClip,
		maxClip:      cfg.Recap.MaxClip,
		clipPad:      cfg.Recap.ClipPad,
		minRelevance: cfg.Recap.MinRelevance,
		logger:       log,
	}
}
