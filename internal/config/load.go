package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the yaml config file, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnv layers environment overrides on top of the file values.
// GEMINI_API_KEYS is env-only; keys never live in the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.Gemini.APIKeys = append(cfg.Gemini.APIKeys, key)
			}
		}
	}
	if v := os.Getenv("RECAP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RECAP_MAX_UPLOAD_MB"); v != "" {
		if mb, err := strconv.Atoi(v); err == nil {
			cfg.Upload.MaxSizeMB = mb
		}
	}
	if v := os.Getenv("WHISPER_MODEL"); v != "" {
		cfg.Whisper.ModelPath = v
	}
	if v := os.Getenv("TTS_VOICE"); v != "" {
		cfg.TTS.Voice = v
	}
}
