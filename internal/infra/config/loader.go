package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces the environment overrides.
const EnvPrefix = "BLANKS_"

// SettingsFile is where the last used settings live, relative to the workspace root.
var SettingsFile = filepath.Join(".blanks", "settings.yaml")

// SettingsStore loads and saves domain.Settings as YAML.
type SettingsStore struct {
	path    string
	environ map[string]string
}

type Option func(*SettingsStore)

// WithEnviron replaces the process environment. Useful for tests.
func WithEnviron(m map[string]string) Option {
	return func(s *SettingsStore) { s.environ = m }
}

func NewSettingsStore(root string, opts ...Option) *SettingsStore {
	s := &SettingsStore{path: filepath.Join(root, SettingsFile)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SettingsStore = (*SettingsStore)(nil)

func (s *SettingsStore) Path() string { return s.path }

// LoadSettings layers settings.yaml and then BLANKS_* over defaults.
// A missing file is not an error. A broken file returns defaults (with env
// applied) together with the error so callers can warn and continue.
func (s *SettingsStore) LoadSettings(defaults domain.Settings) (domain.Settings, error) {
	out, fileErr := s.loadFile(defaults)

	withEnv, err := s.applyEnv(out)
	if err != nil {
		return out, errors.Join(fileErr, err)
	}
	return withEnv, fileErr
}

func (s *SettingsStore) loadFile(defaults domain.Settings) (domain.Settings, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return defaults, &domain.OpError{
			Op:   "config.load_settings",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	var dto YAMLSettings
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return defaults, &domain.OpError{
			Op:   "config.load_settings",
			Kind: domain.KindInvalidConfig,
			Path: s.path,
			Err:  err,
		}
	}

	return MapSettings(s.path, defaults, dto)
}

func (s *SettingsStore) applyEnv(base domain.Settings) (domain.Settings, error) {
	var es EnvSettings
	opts := env.Options{Prefix: EnvPrefix}
	if s.environ != nil {
		opts.Environment = s.environ
	}
	if err := env.ParseWithOptions(&es, opts); err != nil {
		return base, &domain.OpError{
			Op:   "config.parse_env",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("parse env: %w", err),
		}
	}
	return MapEnv(base, es)
}

// SaveSettings writes s atomically (tmp then rename).
func (s *SettingsStore) SaveSettings(st domain.Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{Op: "config.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	b, err := yaml.Marshal(ToYAML(st))
	if err != nil {
		return &domain.OpError{Op: "config.marshal", Kind: domain.KindExecution, Path: s.path, Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{Op: "config.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "config.rename", Kind: domain.KindExecution, Path: s.path, Err: err}
	}
	return nil
}
