package scenes

import (
	"context"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Selector maps narration beats to source-video time ranges, producing an
// ordered, non-overlapping cut list.
type Selector interface {
	Select(ctx context.Context, segments []recap.TranscriptSegment, script *recap.Script, sourceDuration float64) (*recap.CutList, error)
}
