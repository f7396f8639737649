package domain

import (
	"fmt"
	"math"
	"strings"
)

// SelectionMode controls how the next problem file is picked.
type SelectionMode string

const (
	ModeRandom     SelectionMode = "random"
	ModeSequential SelectionMode = "sequential"
)

// ParseMode returns the mode for s and false when s is not a known mode.
func ParseMode(s string) (SelectionMode, bool) {
	switch SelectionMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRandom:
		return ModeRandom, true
	case ModeSequential:
		return ModeSequential, true
	default:
		return "", false
	}
}

// Settings are the per-session game settings. They are persisted between runs.
type Settings struct {
	Language string
	// Ratio is the fraction of candidate characters to blank, in [0,1].
	Ratio float64
	// Problem optionally pins the problem number to start with.
	Problem *int
	Mode    SelectionMode
}

// DefaultSettings mirrors what a fresh workspace plays with.
func DefaultSettings() Settings {
	return Settings{
		Language: "python",
		Ratio:    0.2,
		Mode:     ModeRandom,
	}
}

// Normalize clamps Ratio into [0,1] and falls back to defaults for empty or
// unknown fields. It returns a copy.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	out := s

	out.Ratio = ClampRatio(s.Ratio)
	if strings.TrimSpace(out.Language) == "" {
		out.Language = def.Language
	}
	if m, ok := ParseMode(string(out.Mode)); ok {
		out.Mode = m
	} else {
		out.Mode = def.Mode
	}
	if out.Problem != nil && *out.Problem < 0 {
		out.Problem = nil
	}
	return out
}

// ClampRatio forces r into [0,1]. NaN becomes 0.
func ClampRatio(r float64) float64 {
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// ValidateLanguage rejects names that are not a single directory entry, so a
// language can never address files outside the problems directory.
func ValidateLanguage(lang string) error {
	if strings.TrimSpace(lang) == "" || strings.ContainsAny(lang, `/\`) || lang == "." || lang == ".." {
		return fmt.Errorf("invalid language %q: %w", lang, ErrInvalidConfig)
	}
	return nil
}

// Config represents the workspace configuration loaded from blanks.yaml.
type Config struct {
	Defaults Settings
	Paths    PathsConfig
	Logging  LoggingConfig
}

type PathsConfig struct {
	ProblemsDir string
	SessionsDir string
}

type LoggingConfig struct {
	Debug bool
}

// DefaultConfig provides sane defaults if blanks.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultSettings(),
		Paths: PathsConfig{
			ProblemsDir: "problems",
			SessionsDir: "sessions",
		},
	}
}

// WorkspaceSpec describes a workspace to create on disk.
type WorkspaceSpec struct {
	Root     string
	Language string
}
