package job

import (
	"time"

	"github.com/riddler9999/recapflow/internal/recap"
)

// Status is one pipeline state. The pipeline is linear; any state can move
// to StatusFailed, and StatusCompleted/StatusFailed are terminal.
type Status string

const (
	StatusUploaded            Status = "uploaded"
	StatusExtractingAudio     Status = "extracting_audio"
	StatusTranscribing        Status = "transcribing"
	StatusGeneratingScript    Status = "generating_script"
	StatusSelectingScenes     Status = "selecting_scenes"
	StatusGeneratingVoiceover Status = "generating_voiceover"
	StatusCompiling           Status = "compiling"
	StatusCompleted           Status = "completed"
	StatusFailed              Status = "failed"
)

// Terminal reports whether no further advance is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is the unit of work for one movie-to-recap conversion. The
// orchestrator is the only writer; everyone else sees Snapshots.
type Job struct {
	ID          string
	Status      Status
	Progress    int
	SourcePath  string
	Filename    string
	Title       string
	Genre       string
	WorkDir     string
	CreatedAt   time.Time
	CompletedAt time.Time

	// Stage outputs, each written once by its stage.
	AudioPath      string
	SourceDuration float64
	Transcript     []recap.TranscriptSegment
	Script         *recap.Script
	ScriptDocPath  string
	CutList        *recap.CutList
	VoiceClips     []recap.VoiceClip
	Plan           *recap.RenderPlan
	OutputPath     string
	Error          string
}

// Snapshot is an immutable view of a job handed to the status API.
type Snapshot struct {
	ID          string    `json:"id"`
	Status      Status    `json:"status"`
	Progress    int       `json:"progress"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Filename    string    `json:"filename"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
	Error       string    `json:"error,omitempty"`
}

// Snapshot copies the visible job state.
func (j *Job) Snapshot() Snapshot {
	return Snapshot{
		ID:          j.ID,
		Status:      j.Status,
		Progress:    j.Progress,
		Title:       j.Title,
		Genre:       j.Genre,
		Filename:    j.Filename,
		CreatedAt:   j.CreatedAt,
		CompletedAt: j.CompletedAt,
		Error:       j.Error,
	}
}
