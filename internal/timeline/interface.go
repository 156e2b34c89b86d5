package timeline

import (
	"context"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Compiler merges the cut list with the synthesized voice clips into a
// duration-budgeted render plan.
type Compiler interface {
	Compile(ctx context.Context, cuts *recap.CutList, clips []recap.VoiceClip) (*recap.RenderPlan, error)
}
