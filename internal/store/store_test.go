package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddler9999/recapflow/internal/job"
)

func TestJournalUpsertAndLoad(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	rec := Record{
		ID:         "j1",
		Status:     job.StatusUploaded,
		Title:      "Test Movie",
		Genre:      "Drama",
		Filename:   "movie.mp4",
		SourcePath: "/data/uploads/j1.mp4",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, j.Upsert(ctx, rec))

	// Advance and upsert again: same row, new state.
	rec.Status = job.StatusTranscribing
	rec.Progress = 40
	require.NoError(t, j.Upsert(ctx, rec))

	records, err := j.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "j1", got.ID)
	assert.Equal(t, job.StatusTranscribing, got.Status)
	assert.Equal(t, 40, got.Progress)
	assert.Equal(t, "Test Movie", got.Title)
	assert.Equal(t, "/data/uploads/j1.mp4", got.SourcePath)
}

func TestJournalLoadEmpty(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	records, err := j.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJournalSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	j, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, j.Upsert(ctx, Record{
		ID:        "j1",
		Status:    job.StatusGeneratingScript,
		Progress:  55,
		CreatedAt: time.Now(),
	}))
	require.NoError(t, j.Close())

	// Reopen as a restart would.
	j2, err := Open(dir)
	require.NoError(t, err)
	defer j2.Close()

	records, err := j2.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, job.StatusGeneratingScript, records[0].Status)
	assert.Equal(t, 55, records[0].Progress)
}
