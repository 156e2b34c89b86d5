package script

import (
	"context"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Generator produces a structured recap script from a movie transcript.
type Generator interface {
	Generate(ctx context.Context, segments []recap.TranscriptSegment, title, genre string) (*recap.Script, error)
	// ExportDocx writes the narration script as a styled docx artifact.
	ExportDocx(script *recap.Script, outputPath string) error
}
