package timeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
	"github.com/riddler9999/recapflow/internal/recap"
)

func testCompiler(t *testing.T) Compiler {
	t.Helper()
	cfg := &config.Config{}
	cfg.Recap.TargetDuration = 120
	cfg.Recap.DurationTolerance = 0.10
	return New(cfg, logger.New("error"))
}

func TestCompileEmptyCutList(t *testing.T) {
	_, err := testCompiler(t).Compile(context.Background(), &recap.CutList{}, nil)
	assert.ErrorIs(t, err, recap.ErrEmptyRenderPlan)

	_, err = testCompiler(t).Compile(context.Background(), nil, nil)
	assert.ErrorIs(t, err, recap.ErrEmptyRenderPlan)
}

func TestCompileFreezePadWhenVoiceOutrunsFootage(t *testing.T) {
	cuts := &recap.CutList{Cuts: []recap.SceneCut{
		{Start: 10, End: 13, BeatIndex: 0}, // 3s of footage
	}}
	clips := []recap.VoiceClip{{Path: "b0.mp3", Duration: 8}}

	plan, err := testCompiler(t).Compile(context.Background(), cuts, clips)
	require.NoError(t, err)
	require.Len(t, plan.Segments, 1)

	seg := plan.Segments[0]
	assert.Equal(t, 8.0, seg.VisualDuration)
	assert.Equal(t, 5.0, seg.FreezePad)
	// Footage is untouched, not time-stretched.
	assert.Equal(t, 3.0, seg.Cut.Duration())
}

func TestCompileTrimsFootageToVoice(t *testing.T) {
	cuts := &recap.CutList{Cuts: []recap.SceneCut{
		{Start: 20, End: 30, BeatIndex: 0}, // 10s of footage
	}}
	clips := []recap.VoiceClip{{Path: "b0.mp3", Duration: 4}}

	plan, err := testCompiler(t).Compile(context.Background(), cuts, clips)
	require.NoError(t, err)

	seg := plan.Segments[0]
	assert.Equal(t, 4.0, seg.VisualDuration)
	assert.Equal(t, 0.0, seg.FreezePad)
	// Trim comes off the end; the anchor start survives.
	assert.Equal(t, 20.0, seg.Cut.Start)
	assert.Equal(t, 24.0, seg.Cut.End)
}

func TestCompileVoiceOffsetsAccumulate(t *testing.T) {
	cuts := &recap.CutList{Cuts: []recap.SceneCut{
		{Start: 0, End: 5, BeatIndex: 0},
		{Start: 10, End: 12, BeatIndex: 1}, // 2s footage, 6s voice -> freeze
		{Start: 20, End: 30, BeatIndex: 2},
	}}
	clips := []recap.VoiceClip{
		{Duration: 5},
		{Duration: 6},
		{Duration: 7},
	}

	plan, err := testCompiler(t).Compile(context.Background(), cuts, clips)
	require.NoError(t, err)
	require.Len(t, plan.Segments, 3)

	assert.Equal(t, 0.0, plan.Segments[0].VoiceOffset)
	assert.Equal(t, 5.0, plan.Segments[1].VoiceOffset)
	assert.Equal(t, 11.0, plan.Segments[2].VoiceOffset)
	assert.Equal(t, 18.0, plan.Total)
}

func TestCompileScalesDownToBudget(t *testing.T) {
	// 15 beats x 10s voice = 150s, budget is 132s (120 + 10%).
	var cuts recap.CutList
	var clips []recap.VoiceClip
	for i := 0; i < 15; i++ {
		start := float64(i) * 20
		cuts.Cuts = append(cuts.Cuts, recap.SceneCut{Start: start, End: start + 10, BeatIndex: i})
		clips = append(clips, recap.VoiceClip{Duration: 10})
	}

	plan, err := testCompiler(t).Compile(context.Background(), &cuts, clips)
	require.NoError(t, err)

	// No beat dropped, total scaled into budget.
	require.Len(t, plan.Segments, 15)
	assert.InDelta(t, 132.0, plan.Total, 0.01)

	// Uniform scale: every segment shrank by the same factor.
	for _, seg := range plan.Segments {
		assert.InDelta(t, 8.8, seg.VisualDuration, 0.01)
		assert.InDelta(t, seg.VisualDuration, seg.VoiceDuration, 0.001)
		assert.LessOrEqual(t, seg.Cut.Duration(), seg.VisualDuration+0.001)
	}

	// Offsets still tile the track exactly.
	var offset float64
	for _, seg := range plan.Segments {
		assert.InDelta(t, offset, seg.VoiceOffset, 0.001)
		offset += seg.VisualDuration
	}
}

func TestCompileScaleKeepsFootageBeforeFreeze(t *testing.T) {
	// One long-voiced beat over short footage plus filler to blow the
	// budget: after scaling, real footage fills the visual before any
	// frame is held.
	var cuts recap.CutList
	var clips []recap.VoiceClip
	cuts.Cuts = append(cuts.Cuts, recap.SceneCut{Start: 0, End: 3, BeatIndex: 0})
	clips = append(clips, recap.VoiceClip{Duration: 30})
	for i := 1; i < 10; i++ {
		start := float64(i) * 20
		cuts.Cuts = append(cuts.Cuts, recap.SceneCut{Start: start, End: start + 15, BeatIndex: i})
		clips = append(clips, recap.VoiceClip{Duration: 15})
	}

	plan, err := testCompiler(t).Compile(context.Background(), &cuts, clips)
	require.NoError(t, err)
	assert.LessOrEqual(t, plan.Total, 132.01)

	seg := plan.Segments[0]
	// 3s of footage is still all used; only the freeze shrank.
	assert.InDelta(t, 3.0, seg.Cut.Duration(), 0.001)
	assert.InDelta(t, seg.VisualDuration-3.0, seg.FreezePad, 0.001)
}

func TestCompileWithinBudgetUntouched(t *testing.T) {
	cuts := &recap.CutList{Cuts: []recap.SceneCut{
		{Start: 0, End: 60, BeatIndex: 0},
		{Start: 70, End: 130, BeatIndex: 1},
	}}
	clips := []recap.VoiceClip{{Duration: 60}, {Duration: 60}}

	plan, err := testCompiler(t).Compile(context.Background(), cuts, clips)
	require.NoError(t, err)
	assert.Equal(t, 120.0, plan.Total)
	assert.Equal(t, 60.0, plan.Segments[0].VisualDuration)
}

func TestCompileBeatIndexOutOfRange(t *testing.T) {
	cuts := &recap.CutList{Cuts: []recap.SceneCut{{Start: 0, End: 5, BeatIndex: 3}}}
	_, err := testCompiler(t).Compile(context.Background(), cuts, []recap.VoiceClip{{Duration: 5}})
	assert.Error(t, err)
}
