package script

import (
	"sync"

	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
)

type implGenerator struct {
	apiKeys        []string
	model          string
	targetDuration float64
	logger         logger.Logger

	// keyMu guards currentKey: one generator serves every concurrent
	// pipeline, so rotation must be synchronized.
	keyMu      sync.Mutex
	currentKey int
}

// New creates a Generator that rotates through the supplied Gemini API keys
// when a key hits its quota.
func New(cfg *config.Config, log logger.Logger) Generator {
	return &implGenerator{
		apiKeys:        cfg.Gemini.APIKeys,
		model:          cfg.Gemini.Model,
		targetDuration: cfg.Recap.TargetDuration,
		logger:         log,
	}
}
