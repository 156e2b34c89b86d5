package transcribe

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/riddler9999/recapflow/internal/recap"
)

var reTimeline = regexp.MustCompile(
	`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`,
)

// ParseSRT converts SRT subtitle text into transcript segments, sorted by
// start time with zero-length and malformed blocks skipped.
func ParseSRT(data string) ([]recap.TranscriptSegment, error) {
	var segments []recap.TranscriptSegment

	blocks := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// First line is the sequence index, second the timeline; some
		// tools omit the index.
		timelineIdx := 0
		if !reTimeline.MatchString(lines[0]) {
			timelineIdx = 1
			if len(lines) < 3 || !reTimeline.MatchString(lines[1]) {
				continue
			}
		}

		m := reTimeline.FindStringSubmatch(lines[timelineIdx])
		start := srtTime(m[1], m[2], m[3], m[4])
		end := srtTime(m[5], m[6], m[7], m[8])
		if start >= end {
			continue
		}

		text := strings.TrimSpace(strings.Join(lines[timelineIdx+1:], " "))
		if text == "" {
			continue
		}

		segments = append(segments, recap.TranscriptSegment{
			Start: start,
			End:   end,
			Text:  text,
		})
	}

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})

	// Whisper occasionally emits overlapping neighbours; clamp the earlier
	// end so the non-overlap invariant holds.
	for i := 1; i < len(segments); i++ {
		if segments[i].Start < segments[i-1].End {
			segments[i-1].End = segments[i].Start
		}
	}
	filtered := segments[:0]
	for _, seg := range segments {
		if seg.Start < seg.End {
			filtered = append(filtered, seg)
		}
	}
	segments = filtered

	if err := recap.ValidateTranscript(segments); err != nil {
		return nil, fmt.Errorf("invalid transcript: %w", err)
	}

	return segments, nil
}

func srtTime(h, m, s, ms string) float64 {
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	ss, _ := strconv.Atoi(s)
	mss, _ := strconv.Atoi(ms)
	return float64(hh)*3600 + float64(mm)*60 + float64(ss) + float64(mss)/1000
}
