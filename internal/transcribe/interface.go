package transcribe

import (
	"context"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Transcriber converts an audio file into time-stamped transcript segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]recap.TranscriptSegment, error)
}
