package scenes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
	"github.com/riddler9999/recapflow/internal/recap"
)

func testSelector(t *testing.T) Selector {
	t.Helper()
	cfg := &config.Config{}
	cfg.Recap.MinClip = 2
	cfg.Recap.MaxClip = 12
	cfg.Recap.ClipPad = 1
	cfg.Recap.MinRelevance = 0.05
	return New(cfg, logger.New("error"))
}

func script(beats ...recap.NarrationBeat) *recap.Script {
	return &recap.Script{Title: "test", Beats: beats, TargetDuration: 120}
}

func TestSelectAnchorsBeatsToRelevantSegments(t *testing.T) {
	segments := []recap.TranscriptSegment{
		{Start: 0, End: 5, Text: "intro"},
		{Start: 5, End: 50, Text: "climax fight"},
	}
	s := script(
		recap.NarrationBeat{Text: "the hero arrives", Keywords: []string{"intro"}, ApproxDuration: 4},
		recap.NarrationBeat{Text: "an epic battle begins", Keywords: []string{"fight"}, ApproxDuration: 5},
	)

	cl, err := testSelector(t).Select(context.Background(), segments, s, 50)
	require.NoError(t, err)
	require.Len(t, cl.Cuts, 2)

	// Beat 1 near 0-5s, beat 2 within 5-50s, in beat order.
	assert.Equal(t, 0, cl.Cuts[0].BeatIndex)
	assert.Equal(t, 1, cl.Cuts[1].BeatIndex)
	assert.Less(t, cl.Cuts[0].Start, 5.0)
	assert.GreaterOrEqual(t, cl.Cuts[1].Start, 5.0)
	assert.LessOrEqual(t, cl.Cuts[1].End, 50.0)

	assertDisjoint(t, cl.Cuts)
}

func TestSelectEmptyTranscript(t *testing.T) {
	s := script(recap.NarrationBeat{Text: "anything", ApproxDuration: 5})

	_, err := testSelector(t).Select(context.Background(), nil, s, 100)
	assert.ErrorIs(t, err, recap.ErrInsufficientSourceMaterial)
}

func TestSelectZeroSourceDuration(t *testing.T) {
	segments := []recap.TranscriptSegment{{Start: 0, End: 1, Text: "hello"}}
	s := script(recap.NarrationBeat{Text: "anything", ApproxDuration: 5})

	_, err := testSelector(t).Select(context.Background(), segments, s, 0)
	assert.ErrorIs(t, err, recap.ErrInsufficientSourceMaterial)
}

func TestSelectFallbackProportional(t *testing.T) {
	// Dialogue shares no vocabulary with the beats; every beat still gets
	// footage, spread across the source.
	segments := []recap.TranscriptSegment{
		{Start: 0, End: 100, Text: "zzz"},
		{Start: 100, End: 200, Text: "yyy"},
		{Start: 200, End: 300, Text: "xxx"},
	}
	s := script(
		recap.NarrationBeat{Text: "opening move", ApproxDuration: 5},
		recap.NarrationBeat{Text: "middle game", ApproxDuration: 5},
		recap.NarrationBeat{Text: "final act", ApproxDuration: 5},
	)

	cl, err := testSelector(t).Select(context.Background(), segments, s, 300)
	require.NoError(t, err)
	require.Len(t, cl.Cuts, 3)
	assertDisjoint(t, cl.Cuts)

	// Proportional anchors drift forward with beat index.
	assert.Less(t, cl.Cuts[0].Start, cl.Cuts[2].Start)
}

func TestSelectResolvesIdenticalAnchors(t *testing.T) {
	// All beats match the same segment; overlap resolution must shift the
	// later ones forward, never drop them.
	segments := []recap.TranscriptSegment{
		{Start: 10, End: 20, Text: "dragon attacks the castle"},
		{Start: 50, End: 60, Text: "quiet dinner"},
	}
	s := script(
		recap.NarrationBeat{Text: "the dragon attacks", Keywords: []string{"dragon"}, ApproxDuration: 4},
		recap.NarrationBeat{Text: "the dragon attacks again", Keywords: []string{"dragon"}, ApproxDuration: 4},
		recap.NarrationBeat{Text: "the dragon keeps attacking", Keywords: []string{"dragon"}, ApproxDuration: 4},
	)

	cl, err := testSelector(t).Select(context.Background(), segments, s, 120)
	require.NoError(t, err)
	require.Len(t, cl.Cuts, 3)
	assertDisjoint(t, cl.Cuts)

	for i, cut := range cl.Cuts {
		assert.Equal(t, i, cut.BeatIndex)
		assert.Greater(t, cut.Duration(), 0.0)
	}
}

func TestSelectClampsToSourceBounds(t *testing.T) {
	segments := []recap.TranscriptSegment{
		{Start: 28, End: 30, Text: "the very end"},
	}
	s := script(recap.NarrationBeat{Text: "the very end", ApproxDuration: 10})

	cl, err := testSelector(t).Select(context.Background(), segments, s, 30)
	require.NoError(t, err)
	require.Len(t, cl.Cuts, 1)
	assert.LessOrEqual(t, cl.Cuts[0].End, 30.0)
	assert.GreaterOrEqual(t, cl.Cuts[0].Start, 0.0)
}

func TestSelectChronologyNote(t *testing.T) {
	segments := []recap.TranscriptSegment{
		{Start: 0, End: 10, Text: "the hero is born"},
		{Start: 100, End: 110, Text: "the final showdown"},
	}
	// Narration references the ending first.
	s := script(
		recap.NarrationBeat{Text: "it ends with a final showdown", Keywords: []string{"showdown"}, ApproxDuration: 4},
		recap.NarrationBeat{Text: "but first a hero is born", Keywords: []string{"born"}, ApproxDuration: 4},
	)

	cl, err := testSelector(t).Select(context.Background(), segments, s, 200)
	require.NoError(t, err)
	assert.NotEmpty(t, cl.ChronologyNote)
	assertDisjoint(t, cl.Cuts)
}

func TestRelevanceScoring(t *testing.T) {
	beat := recap.NarrationBeat{
		Text:     "an epic battle begins",
		Keywords: []string{"battle", "fight"},
	}
	weights, total := beatWeights(beat)
	require.Greater(t, total, 0.0)

	fight := relevance(weights, total, recap.TranscriptSegment{Text: "the climax fight and battle rage on"})
	calm := relevance(weights, total, recap.TranscriptSegment{Text: "a calm walk through the park"})
	assert.Greater(t, fight, calm)
	assert.Equal(t, 0.0, calm)

	// Repeated words in a segment don't inflate the score.
	once := relevance(weights, total, recap.TranscriptSegment{Text: "battle"})
	thrice := relevance(weights, total, recap.TranscriptSegment{Text: "battle battle battle"})
	assert.Equal(t, once, thrice)
}

func TestIntervalSetPlace(t *testing.T) {
	is := newIntervalSet(100)

	s1, e1, ok := is.place(10, 5)
	require.True(t, ok)
	assert.Equal(t, 10.0, s1)
	assert.Equal(t, 15.0, e1)

	// Same anchor shifts forward past the existing claim.
	s2, e2, ok := is.place(10, 5)
	require.True(t, ok)
	assert.Equal(t, 15.0, s2)
	assert.Equal(t, 20.0, e2)

	// Near the end, the cut shrinks rather than overflowing the source.
	s3, e3, ok := is.place(98, 5)
	require.True(t, ok)
	assert.GreaterOrEqual(t, s3, 20.0)
	assert.LessOrEqual(t, e3, 100.0)
}

func assertDisjoint(t *testing.T, cuts []recap.SceneCut) {
	t.Helper()
	for i := 0; i < len(cuts); i++ {
		for j := i + 1; j < len(cuts); j++ {
			a, b := cuts[i], cuts[j]
			overlap := a.Start < b.End && b.Start < a.End
			assert.False(t, overlap, "cuts %d and %d overlap: [%v,%v) vs [%v,%v)", i, j, a.Start, a.End, b.Start, b.End)
		}
	}
}
