package config

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/blanks/internal/domain"
)

// MapSettings applies ys on top of base. Empty fields keep the base value.
func MapSettings(path string, base domain.Settings, ys YAMLSettings) (domain.Settings, error) {
	out := base

	if lang := strings.TrimSpace(ys.Language); lang != "" {
		if err := domain.ValidateLanguage(lang); err != nil {
			return base, invalidField(path, "language", fmt.Sprintf("%q is not a directory name", lang))
		}
		out.Language = lang
	}
	if ys.Ratio != nil {
		if *ys.Ratio < 0 || *ys.Ratio > 1 {
			return base, invalidField(path, "ratio", fmt.Sprintf("%v is outside [0,1]", *ys.Ratio))
		}
		out.Ratio = *ys.Ratio
	}
	if ys.Mode != "" {
		m, ok := domain.ParseMode(ys.Mode)
		if !ok {
			return base, invalidField(path, "mode", fmt.Sprintf("unknown mode %q", ys.Mode))
		}
		out.Mode = m
	}
	if ys.Problem != nil {
		if *ys.Problem < 0 {
			return base, invalidField(path, "problem", "must not be negative")
		}
		n := *ys.Problem
		out.Problem = &n
	}

	return out, nil
}

// ToYAML is the inverse of MapSettings.
func ToYAML(s domain.Settings) YAMLSettings {
	ratio := s.Ratio
	ys := YAMLSettings{
		Language: s.Language,
		Ratio:    &ratio,
		Mode:     string(s.Mode),
	}
	if s.Problem != nil {
		n := *s.Problem
		ys.Problem = &n
	}
	return ys
}

// MapEnv applies BLANKS_* overrides. Ratio is clamped rather than rejected,
// matching how flags are treated.
func MapEnv(base domain.Settings, es EnvSettings) (domain.Settings, error) {
	out := base

	if lang := strings.TrimSpace(es.Language); lang != "" {
		out.Language = lang
	}
	if es.Ratio != nil {
		out.Ratio = domain.ClampRatio(*es.Ratio)
	}
	if es.Mode != "" {
		m, ok := domain.ParseMode(es.Mode)
		if !ok {
			return base, invalidField(EnvPrefix+"MODE", "mode", fmt.Sprintf("unknown mode %q", es.Mode))
		}
		out.Mode = m
	}
	if es.Problem != nil {
		n := *es.Problem
		out.Problem = &n
	}
	return out, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
