package scenes

import (
	"strings"
	"unicode"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Relevance scoring: weighted token overlap between a beat and a transcript
// segment, normalized by the beat's total token weight. Topic keywords count
// double so a beat like "an epic battle begins" with keywords [battle, fight]
// anchors to dialogue mentioning the fight even when the prose differs.

const keywordWeight = 2.0

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "he": true,
	"her": true, "his": true, "i": true, "in": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "or": true, "she": true, "that": true,
	"the": true, "their": true, "they": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "will": true, "with": true,
	"you": true,
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	out := fields[:0]
	for _, f := range fields {
		if len(f) > 1 && !stopwords[f] {
			out = append(out, f)
		}
	}
	return out
}

// beatWeights builds the token weight map for one beat: narration tokens at
// weight 1, keyword tokens at keywordWeight (keyword wins on collision).
func beatWeights(beat recap.NarrationBeat) (map[string]float64, float64) {
	weights := make(map[string]float64)

	for _, tok := range tokenize(beat.Text) {
		if _, ok := weights[tok]; !ok {
			weights[tok] = 1
		}
	}
	for _, kw := range beat.Keywords {
		for _, tok := range tokenize(kw) {
			weights[tok] = keywordWeight
		}
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	return weights, total
}

// relevance scores one segment against precomputed beat weights. Each beat
// token is credited at most once, so repeated words in a segment do not
// inflate the score. Result is in [0, 1].
func relevance(weights map[string]float64, total float64, segment recap.TranscriptSegment) float64 {
	if total == 0 {
		return 0
	}

	var matched float64
	seen := make(map[string]bool)
	for _, tok := range tokenize(segment.Text) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		if w, ok := weights[tok]; ok {
			matched += w
		}
	}

	return matched / total
}
