package media

import "context"

// Toolkit abstracts the ffmpeg/ffprobe primitives the pipeline needs:
// probing, audio extraction, clip extraction and final assembly.
type Toolkit interface {
	// Duration returns the media duration in seconds.
	Duration(ctx context.Context, path string) (float64, error)
	// ExtractAudio writes a 16kHz mono WAV next to the pipeline work dir
	// and returns its path.
	ExtractAudio(ctx context.Context, videoPath, outDir string) (string, error)
	// ExtractClip cuts [start, start+duration) from the source, scaled and
	// padded to the output frame. freezePad > 0 extends the clip by holding
	// the last frame for that many seconds.
	ExtractClip(ctx context.Context, videoPath string, start, duration, freezePad float64, outPath string) error
	// TitleCard renders a text-on-black card clip of the given duration.
	TitleCard(ctx context.Context, text string, duration float64, outPath string) error
	// Silence writes a silent WAV of the given duration.
	Silence(ctx context.Context, duration float64, outPath string) error
	// TrimAudio cuts an audio clip to the given duration, normalized to the
	// narration track format.
	TrimAudio(ctx context.Context, inPath string, duration float64, outPath string) error
	// ConcatClips joins video clips (no audio) into one file.
	ConcatClips(ctx context.Context, clipPaths []string, outPath string) error
	// ConcatAudio joins audio clips into one track.
	ConcatAudio(ctx context.Context, audioPaths []string, outPath string) error
	// AddVoiceover muxes the narration track over the video.
	AddVoiceover(ctx context.Context, videoPath, audioPath, outPath string) error
}
