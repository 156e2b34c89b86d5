package config

import "fmt"

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	TTS         TTSConfig         `yaml:"tts"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Recap       RecapConfig       `yaml:"recap"`
	Paths       PathsConfig       `yaml:"paths"`
	Upload      UploadConfig      `yaml:"upload"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	Preset     string `yaml:"preset"`
	CRF        int    `yaml:"crf"`
}

type TTSConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Voice      string `yaml:"voice"`
	Rate       string `yaml:"rate"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
	// APIKeys is populated from the GEMINI_API_KEYS environment variable,
	// never from the config file.
	APIKeys []string `yaml:"-"`
}

type RecapConfig struct {
	TargetDuration    float64 `yaml:"target_duration"`
	DurationTolerance float64 `yaml:"duration_tolerance"`
	MinClip           float64 `yaml:"min_clip"`
	MaxClip           float64 `yaml:"max_clip"`
	ClipPad           float64 `yaml:"clip_pad"`
	MinRelevance      float64 `yaml:"min_relevance"`
	TitleCards        bool    `yaml:"title_cards"`
}

type PathsConfig struct {
	Uploads string `yaml:"uploads"`
	Output  string `yaml:"output"`
	// Input enables the drop-folder watcher when set.
	Input string `yaml:"input"`
}

type UploadConfig struct {
	MaxSizeMB    int    `yaml:"max_size_mb"`
	DefaultGenre string `yaml:"default_genre"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "fast"
	}
	if c.FFmpeg.CRF == 0 {
		c.FFmpeg.CRF = 23
	}
	if c.TTS.BinaryPath == "" {
		c.TTS.BinaryPath = "edge-tts"
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "en-US-GuyNeural"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Recap.TargetDuration == 0 {
		c.Recap.TargetDuration = 120
	}
	if c.Recap.DurationTolerance == 0 {
		c.Recap.DurationTolerance = 0.10
	}
	if c.Recap.MinClip == 0 {
		c.Recap.MinClip = 2
	}
	if c.Recap.MaxClip == 0 {
		c.Recap.MaxClip = 12
	}
	if c.Recap.ClipPad == 0 {
		c.Recap.ClipPad = 1
	}
	if c.Recap.MinRelevance == 0 {
		c.Recap.MinRelevance = 0.05
	}
	if c.Upload.MaxSizeMB == 0 {
		c.Upload.MaxSizeMB = 2000
	}
	if c.Upload.DefaultGenre == "" {
		c.Upload.DefaultGenre = "Drama"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
