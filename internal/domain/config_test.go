package domain

import (
	"errors"
	"math"
	"testing"
)

func TestSettingsNormalize(t *testing.T) {
	neg := -3
	cases := []struct {
		name string
		in   Settings
		want Settings
	}{
		{"defaults fill empty", Settings{}, Settings{Language: "python", Ratio: 0, Mode: ModeRandom}},
		{"ratio clamped high", Settings{Language: "go", Ratio: 4, Mode: ModeSequential}, Settings{Language: "go", Ratio: 1, Mode: ModeSequential}},
		{"ratio clamped low", Settings{Language: "go", Ratio: -1, Mode: "RANDOM"}, Settings{Language: "go", Ratio: 0, Mode: ModeRandom}},
		{"unknown mode", Settings{Language: "rust", Ratio: 0.5, Mode: "shuffle"}, Settings{Language: "rust", Ratio: 0.5, Mode: ModeRandom}},
		{"negative problem dropped", Settings{Language: "go", Ratio: 0.5, Mode: ModeRandom, Problem: &neg}, Settings{Language: "go", Ratio: 0.5, Mode: ModeRandom}},
	}

	for _, c := range cases {
		got := c.in.Normalize()
		if got.Language != c.want.Language || got.Ratio != c.want.Ratio || got.Mode != c.want.Mode {
			t.Errorf("%s: got %+v, want %+v", c.name, got, c.want)
		}
		if (got.Problem == nil) != (c.want.Problem == nil) {
			t.Errorf("%s: problem mismatch, got %v", c.name, got.Problem)
		}
	}
}

func TestClampRatioNaN(t *testing.T) {
	if got := ClampRatio(math.NaN()); got != 0 {
		t.Fatalf("expected NaN to clamp to 0, got %v", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Paths.ProblemsDir != "problems" || cfg.Paths.SessionsDir != "sessions" {
		t.Fatalf("unexpected default paths: %+v", cfg.Paths)
	}
	if cfg.Defaults.Ratio != 0.2 || cfg.Defaults.Language != "python" {
		t.Fatalf("unexpected default settings: %+v", cfg.Defaults)
	}
}

func TestValidateLanguage(t *testing.T) {
	cases := []struct {
		lang string
		ok   bool
	}{
		{"python", true},
		{"c++", true},
		{"go", true},
		{"", false},
		{"  ", false},
		{".", false},
		{"..", false},
		{"../..", false},
		{"python/solutions", false},
		{`..\windows`, false},
	}
	for _, c := range cases {
		err := ValidateLanguage(c.lang)
		if (err == nil) != c.ok {
			t.Errorf("ValidateLanguage(%q) = %v, want ok=%v", c.lang, err, c.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ValidateLanguage(%q) should wrap ErrInvalidConfig, got %v", c.lang, err)
		}
	}
}
