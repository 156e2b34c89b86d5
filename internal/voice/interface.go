package voice

import (
	"context"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Synthesizer turns narration text into a spoken audio clip with a measured
// duration.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outPath string) (recap.VoiceClip, error)
}
