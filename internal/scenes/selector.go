package scenes

import (
	"context"
	"math"
	"sort"

	"github.com/riddler9999/recapflow/internal/recap"
)

// minPlaceable is the smallest cut the overlap resolver will shrink to
// before looking for a different gap.
const minPlaceable = 0.5

// Select walks the beats in narration order, anchoring each to its most
// relevant transcript segment (or a proportional position when nothing
// scores above the threshold), expands anchors to clip-sized ranges and
// resolves overlaps so the result is pairwise disjoint.
func (s *implSelector) Select(ctx context.Context, segments []recap.TranscriptSegment, script *recap.Script, sourceDuration float64) (*recap.CutList, error) {
	if len(segments) == 0 || sourceDuration <= 0 {
		return nil, recap.ErrInsufficientSourceMaterial
	}

	occupied := newIntervalSet(sourceDuration)
	cuts := make([]recap.SceneCut, 0, len(script.Beats))

	for i, beat := range script.Beats {
		anchor, score := s.bestSegment(beat, segments)
		if score < s.minRelevance {
			anchor = s.proportionalAnchor(i, len(script.Beats), segments, sourceDuration)
			s.logger.Debug(ctx, "Beat %d below relevance threshold (%.3f), using proportional anchor at %.1fs", i, score, anchor.Start)
		}

		desired := clamp(beat.ApproxDuration+s.clipPad, s.minClip, s.maxClip)
		start, end, ok := occupied.place(anchor.Start, desired)
		if !ok {
			return nil, recap.ErrInsufficientSourceMaterial
		}

		cuts = append(cuts, recap.SceneCut{
			Start:     start,
			End:       end,
			BeatIndex: i,
		})
	}

	cl := &recap.CutList{Cuts: cuts}
	if !cl.Chronological() {
		cl.ChronologyNote = "cut order follows narration, not source chronology"
		s.logger.Info(ctx, "Cut list is out of source order (allowed): %s", cl.ChronologyNote)
	}

	return cl, nil
}

// bestSegment returns the highest-scoring segment for the beat. Ties go to
// the earlier segment so selection is deterministic.
func (s *implSelector) bestSegment(beat recap.NarrationBeat, segments []recap.TranscriptSegment) (recap.TranscriptSegment, float64) {
	weights, total := beatWeights(beat)

	best := segments[0]
	bestScore := relevance(weights, total, segments[0])
	for _, seg := range segments[1:] {
		if score := relevance(weights, total, seg); score > bestScore {
			best, bestScore = seg, score
		}
	}
	return best, bestScore
}

// proportionalAnchor picks the segment whose midpoint is closest to the
// beat's proportional position in the film, so every beat gets footage even
// when text matching fails.
func (s *implSelector) proportionalAnchor(beatIndex, totalBeats int, segments []recap.TranscriptSegment, sourceDuration float64) recap.TranscriptSegment {
	target := float64(beatIndex) / float64(totalBeats) * sourceDuration

	best := segments[0]
	bestDist := math.Abs(midpoint(segments[0]) - target)
	for _, seg := range segments[1:] {
		if d := math.Abs(midpoint(seg) - target); d < bestDist {
			best, bestDist = seg, d
		}
	}
	return best
}

func midpoint(seg recap.TranscriptSegment) float64 {
	return (seg.Start + seg.End) / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// intervalSet tracks claimed source ranges and places new cuts into free
// gaps, shifting forward past conflicts and shrinking only when no gap fits.
type intervalSet struct {
	limit     float64
	intervals []recap.SceneCut // sorted by Start, kept disjoint
}

func newIntervalSet(limit float64) *intervalSet {
	return &intervalSet{limit: limit}
}

// place claims a range of the desired duration as close to start as
// possible. Resolution order: the gap containing start (or the first gap
// after it) that fits; then the first gap after start of at least
// minPlaceable; then the largest gap anywhere. Returns ok=false only when
// the source is fully claimed.
func (is *intervalSet) place(start, desired float64) (float64, float64, bool) {
	if start < 0 {
		start = 0
	}
	if start > is.limit {
		start = is.limit
	}

	gaps := is.gaps()
	if len(gaps) == 0 {
		return 0, 0, false
	}

	// First gap at or after the requested start that fits the full
	// duration. A gap containing start is used from start onward.
	for _, g := range gaps {
		from := math.Max(g.Start, start)
		if g.End-from >= desired {
			return is.claim(from, from+desired)
		}
	}

	// No gap fits after start; shrink into the first usable one.
	for _, g := range gaps {
		from := math.Max(g.Start, start)
		if g.End-from >= minPlaceable {
			return is.claim(from, g.End)
		}
	}

	// Fall back to the largest gap anywhere, shrunk to fit.
	largest := gaps[0]
	for _, g := range gaps[1:] {
		if g.End-g.Start > largest.End-largest.Start {
			largest = g
		}
	}
	end := math.Min(largest.End, largest.Start+desired)
	if end <= largest.Start {
		return 0, 0, false
	}
	return is.claim(largest.Start, end)
}

func (is *intervalSet) claim(start, end float64) (float64, float64, bool) {
	is.intervals = append(is.intervals, recap.SceneCut{Start: start, End: end})
	sort.Slice(is.intervals, func(i, j int) bool {
		return is.intervals[i].Start < is.intervals[j].Start
	})
	return start, end, true
}

// gaps returns the free ranges between claimed intervals, in source order.
func (is *intervalSet) gaps() []recap.SceneCut {
	var out []recap.SceneCut
	cursor := 0.0
	for _, iv := range is.intervals {
		if iv.Start > cursor {
			out = append(out, recap.SceneCut{Start: cursor, End: iv.Start})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if cursor < is.limit {
		out = append(out, recap.SceneCut{Start: cursor, End: is.limit})
	}
	return out
}
