package recap

import (
	"fmt"
	"sort"
	"strings"
)

// TranscriptSegment is one time-stamped line of source dialogue.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// ValidateTranscript checks that segments are ordered, non-overlapping and
// well-formed (start < end).
func ValidateTranscript(segments []TranscriptSegment) error {
	for i, seg := range segments {
		if seg.Start >= seg.End {
			return fmt.Errorf("segment %d: start %.2f >= end %.2f", i, seg.Start, seg.End)
		}
		if i > 0 && seg.Start < segments[i-1].End {
			return fmt.Errorf("segment %d: overlaps previous segment (%.2f < %.2f)", i, seg.Start, segments[i-1].End)
		}
	}
	return nil
}

// TranscriptText joins all segment texts into one block for prompting.
func TranscriptText(segments []TranscriptSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(strings.TrimSpace(seg.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// NarrationBeat is one unit of narration intended to accompany one scene.
type NarrationBeat struct {
	Text           string   `json:"text"`
	ApproxDuration float64  `json:"approx_duration"`
	Keywords       []string `json:"keywords"`
}

// Script is the structured recap narration produced by the script stage.
type Script struct {
	Title          string          `json:"title"`
	Beats          []NarrationBeat `json:"beats"`
	TargetDuration float64         `json:"target_duration"`
}

// Narration returns the full narration text in beat order.
func (s *Script) Narration() string {
	parts := make([]string, 0, len(s.Beats))
	for _, b := range s.Beats {
		parts = append(parts, strings.TrimSpace(b.Text))
	}
	return strings.Join(parts, " ")
}

// NormalizeDurations rescales beat durations so their sum matches the
// target duration. Zero or missing durations are replaced by an even share
// before rescaling.
func (s *Script) NormalizeDurations() {
	if len(s.Beats) == 0 || s.TargetDuration <= 0 {
		return
	}
	even := s.TargetDuration / float64(len(s.Beats))
	var sum float64
	for i := range s.Beats {
		if s.Beats[i].ApproxDuration <= 0 {
			s.Beats[i].ApproxDuration = even
		}
		sum += s.Beats[i].ApproxDuration
	}
	scale := s.TargetDuration / sum
	for i := range s.Beats {
		s.Beats[i].ApproxDuration *= scale
	}
}

// SceneCut is a contiguous source time range selected for one beat.
type SceneCut struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	BeatIndex int     `json:"beat_index"`
}

// Duration returns the cut length in seconds.
func (c SceneCut) Duration() float64 {
	return c.End - c.Start
}

// CutList is the ordered output of the scene selector. Cuts are in beat
// order, which need not follow source chronology.
type CutList struct {
	Cuts           []SceneCut `json:"cuts"`
	ChronologyNote string     `json:"chronology_note,omitempty"`
}

// Chronological reports whether cuts appear in source time order.
func (cl *CutList) Chronological() bool {
	return sort.SliceIsSorted(cl.Cuts, func(i, j int) bool {
		return cl.Cuts[i].Start < cl.Cuts[j].Start
	})
}

// VoiceClip is one synthesized narration clip with its measured duration.
type VoiceClip struct {
	Path     string  `json:"path"`
	Duration float64 `json:"duration"`
}

// RenderSegment pairs one cut with its slice of the narration track.
type RenderSegment struct {
	Cut            SceneCut `json:"cut"`
	VoiceOffset    float64  `json:"voice_offset"`
	VoiceDuration  float64  `json:"voice_duration"`
	VisualDuration float64  `json:"visual_duration"`
	// FreezePad is how much of VisualDuration is a held last frame
	// (voice ran longer than the cut).
	FreezePad float64 `json:"freeze_pad"`
}

// RenderPlan is the fully resolved timeline, ready for assembly.
type RenderPlan struct {
	Segments []RenderSegment `json:"segments"`
	// AudioTrack is the concatenated narration track (with silence gaps)
	// once the compile stage has rendered it.
	AudioTrack string  `json:"audio_track,omitempty"`
	Total      float64 `json:"total"`
}
