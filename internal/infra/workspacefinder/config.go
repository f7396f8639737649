package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/blanks/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads blanks.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	d := y.Blanks.Defaults
	if lang := strings.TrimSpace(d.Language); lang != "" {
		if err := domain.ValidateLanguage(lang); err != nil {
			return cfg, invalid(path, "blanks.defaults.language", fmt.Sprintf("%q is not a directory name", lang))
		}
		cfg.Defaults.Language = lang
	}
	if d.Ratio != nil {
		if *d.Ratio < 0 || *d.Ratio > 1 {
			return cfg, invalid(path, "blanks.defaults.ratio", fmt.Sprintf("%v is outside [0,1]", *d.Ratio))
		}
		cfg.Defaults.Ratio = *d.Ratio
	}
	if d.Mode != "" {
		m, ok := domain.ParseMode(d.Mode)
		if !ok {
			return cfg, invalid(path, "blanks.defaults.mode", fmt.Sprintf("unknown mode %q", d.Mode))
		}
		cfg.Defaults.Mode = m
	}

	if y.Blanks.Paths.ProblemsDir != "" {
		cfg.Paths.ProblemsDir = y.Blanks.Paths.ProblemsDir
	}
	if y.Blanks.Paths.SessionsDir != "" {
		cfg.Paths.SessionsDir = y.Blanks.Paths.SessionsDir
	}
	if y.Blanks.Logging.Debug != nil {
		cfg.Logging.Debug = *y.Blanks.Logging.Debug
	}

	return cfg, nil
}

func invalid(path, field, msg string) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}

type yamlConfig struct {
	Blanks struct {
		Defaults struct {
			Language string   `yaml:"language"`
			Ratio    *float64 `yaml:"ratio"`
			Mode     string   `yaml:"mode"`
		} `yaml:"defaults"`

		Paths struct {
			ProblemsDir string `yaml:"problems_dir"`
			SessionsDir string `yaml:"sessions_dir"`
		} `yaml:"paths"`

		Logging struct {
			Debug *bool `yaml:"debug"`
		} `yaml:"logging"`
	} `yaml:"blanks"`
}
