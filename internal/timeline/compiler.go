package timeline

import (
	"context"
	"fmt"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Compile aligns each cut with its beat's voice clip. The visual duration of
// a segment is the spoken duration: footage shorter than the narration is
// held on its last frame (freeze pad, never a speed change), footage longer
// is trimmed from the end so the anchor point survives. If the resulting
// timeline exceeds the duration budget, every segment is scaled down
// uniformly; beats are never dropped.
func (c *implCompiler) Compile(ctx context.Context, cuts *recap.CutList, clips []recap.VoiceClip) (*recap.RenderPlan, error) {
	if cuts == nil || len(cuts.Cuts) == 0 {
		return nil, recap.ErrEmptyRenderPlan
	}

	plan := &recap.RenderPlan{
		Segments: make([]recap.RenderSegment, 0, len(cuts.Cuts)),
	}

	var offset float64
	for _, cut := range cuts.Cuts {
		if cut.BeatIndex < 0 || cut.BeatIndex >= len(clips) {
			return nil, fmt.Errorf("cut references beat %d but only %d voice clips exist", cut.BeatIndex, len(clips))
		}
		voice := clips[cut.BeatIndex]

		seg := recap.RenderSegment{
			Cut:           cut,
			VoiceOffset:   offset,
			VoiceDuration: voice.Duration,
		}

		footage := cut.Duration()
		switch {
		case voice.Duration > footage:
			// Narration outruns the footage: hold the last frame.
			seg.VisualDuration = voice.Duration
			seg.FreezePad = voice.Duration - footage
		default:
			// Footage outruns the narration: trim the tail.
			seg.VisualDuration = voice.Duration
			seg.Cut.End = seg.Cut.Start + voice.Duration
		}

		offset += seg.VisualDuration
		plan.Segments = append(plan.Segments, seg)
	}
	plan.Total = offset

	maxTotal := c.targetDuration * (1 + c.tolerance)
	if plan.Total > maxTotal {
		c.scaleDown(ctx, plan, maxTotal)
	}

	return plan, nil
}

// scaleDown uniformly rescales every segment so the plan fits the budget.
// Freeze pads give way first within each segment: the scaled visual is
// refilled with real footage up to the original cut length before any frame
// is held. Narration is tail-trimmed by the same factor; that trade-off is
// preferred over dropping beats.
func (c *implCompiler) scaleDown(ctx context.Context, plan *recap.RenderPlan, maxTotal float64) {
	scale := maxTotal / plan.Total
	c.logger.Info(ctx, "Timeline %.1fs exceeds budget %.1fs, scaling segments by %.3f", plan.Total, maxTotal, scale)

	var offset float64
	for i := range plan.Segments {
		seg := &plan.Segments[i]

		visual := seg.VisualDuration * scale
		footage := seg.Cut.Duration() // footage the compile pass kept for this segment
		if footage > visual {
			footage = visual
		}

		seg.VisualDuration = visual
		seg.FreezePad = visual - footage
		seg.VoiceDuration = visual
		seg.Cut.End = seg.Cut.Start + footage
		seg.VoiceOffset = offset

		offset += visual
	}
	plan.Total = offset
}
