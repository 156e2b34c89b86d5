package transcribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSRT(t *testing.T) {
	data := `1
00:00:01,000 --> 00:00:04,500
The hero arrives in town.

2
00:00:05,000 --> 00:00:09,250
An epic battle begins
on the bridge.

3
00:01:00,000 --> 00:01:02,000
The dust settles.
`

	segments, err := ParseSRT(data)
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, 1.0, segments[0].Start)
	assert.Equal(t, 4.5, segments[0].End)
	assert.Equal(t, "The hero arrives in town.", segments[0].Text)

	// Multi-line cue joined with a space
	assert.Equal(t, "An epic battle begins on the bridge.", segments[1].Text)

	assert.Equal(t, 60.0, segments[2].Start)
	assert.Equal(t, 62.0, segments[2].End)
}

func TestParseSRTNoIndex(t *testing.T) {
	data := `00:00:00,500 --> 00:00:02,000
No index line here.
`
	segments, err := ParseSRT(data)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, 0.5, segments[0].Start)
}

func TestParseSRTSkipsMalformedBlocks(t *testing.T) {
	data := `1
not a timestamp
garbage

2
00:00:03,000 --> 00:00:03,000
zero length

3
00:00:04,000 --> 00:00:06,000
kept
`
	segments, err := ParseSRT(data)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "kept", segments[0].Text)
}

func TestParseSRTClampsOverlaps(t *testing.T) {
	data := `1
00:00:00,000 --> 00:00:05,000
first

2
00:00:04,000 --> 00:00:08,000
second
`
	segments, err := ParseSRT(data)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, 4.0, segments[0].End)
	assert.Equal(t, 4.0, segments[1].Start)
}

func TestParseSRTEmpty(t *testing.T) {
	segments, err := ParseSRT("")
	require.NoError(t, err)
	assert.Empty(t, segments)
}
