package recap

import "errors"

var (
	// ErrInsufficientSourceMaterial means the transcript is empty or the
	// source has no measurable duration; no cuts can be selected.
	ErrInsufficientSourceMaterial = errors.New("insufficient source material")

	// ErrEmptyRenderPlan means the cut list was empty at compile time.
	ErrEmptyRenderPlan = errors.New("empty render plan")

	// ErrNotReady means a result was requested before its stage completed.
	ErrNotReady = errors.New("not ready")

	// ErrJobNotFound means the job id is unknown to the registry.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobBusy means an advance is already in flight for the job.
	ErrJobBusy = errors.New("job is already being processed")

	// ErrInvalidState means the requested transition is not allowed from
	// the job's current state.
	ErrInvalidState = errors.New("invalid job state")
)
