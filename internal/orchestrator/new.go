package orchestrator

import (
	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/job"
	"github.com/riddler9999/recapflow/internal/logger"
	"github.com/riddler9999/recapflow/internal/media"
	"github.com/riddler9999/recapflow/internal/scenes"
	"github.com/riddler9999/recapflow/internal/script"
	"github.com/riddler9999/recapflow/internal/timeline"
	"github.com/riddler9999/recapflow/internal/transcribe"
	"github.com/riddler9999/recapflow/internal/voice"
)

type implOrchestrator struct {
	cfg         *config.Config
	registry    *job.Registry
	journal     Journal
	media       media.Toolkit
	transcriber transcribe.Transcriber
	generator   script.Generator
	selector    scenes.Selector
	compiler    timeline.Compiler
	synthesizer voice.Synthesizer
	logger      logger.Logger
}

// Deps bundles the orchestrator's collaborators.
type Deps struct {
	Config      *config.Config
	Registry    *job.Registry
	Journal     Journal
	Media       media.Toolkit
	Transcriber transcribe.Transcriber
	Generator   script.Generator
	Selector    scenes.Selector
	Compiler    timeline.Compiler
	Synthesizer voice.Synthesizer
	Logger      logger.Logger
}

// New creates an Orchestrator.
func New(d Deps) Orchestrator {
	return &implOrchestrator{
		cfg:         d.Config,
		registry:    d.Registry,
		journal:     d.Journal,
		media:       d.Media,
		transcriber: d.Transcriber,
		generator:   d.Generator,
		selector:    d.Selector,
		compiler:    d.Compiler,
		synthesizer: d.Synthesizer,
		logger:      d.Logger,
	}
}
