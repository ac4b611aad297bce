package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the file/env-configurable settings that sit underneath the
// command line flags.
type Config struct {
	// ToleranceMS is the default hit window in milliseconds.
	ToleranceMS int `koanf:"tolerance_ms"`

	// PreRollMS is the default countdown in milliseconds.
	PreRollMS int `koanf:"preroll_ms"`

	// Database is the score database path.
	Database string `koanf:"database"`

	// CueFreq is the cue tone frequency in Hz.
	CueFreq int `koanf:"cue_freq"`

	// FeedbackFreq is the press feedback tone frequency in Hz.
	FeedbackFreq int `koanf:"feedback_freq"`
}

func Defaults() *Config {
	return &Config{
		ToleranceMS:  100,
		PreRollMS:    2000,
		Database:     "./scores.db",
		CueFreq:      880,
		FeedbackFreq: 440,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if TAPT_CONFIG is set
//  3. env (prefix TAPT_)
func Load() (*Config, error) {
	base := Defaults()

	k := koanf.New(".")

	if path := os.Getenv("TAPT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: TAPT_TOLERANCE_MS, TAPT_DATABASE, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("TAPT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "tapt_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.ToleranceMS <= 0 {
		return nil, fmt.Errorf("%w: tolerance_ms must be positive", ErrInvalidConfig)
	}
	if cfg.PreRollMS < 0 {
		return nil, fmt.Errorf("%w: preroll_ms must not be negative", ErrInvalidConfig)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("%w: database must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
