package config

// YAMLSettings is the on-disk shape of .blanks/settings.yaml.
type YAMLSettings struct {
	Language string   `yaml:"language"`
	Ratio    *float64 `yaml:"ratio,omitempty"`
	Mode     string   `yaml:"mode,omitempty"`
	Problem  *int     `yaml:"problem,omitempty"`
}

// EnvSettings holds the BLANKS_* overrides.
type EnvSettings struct {
	Language string   `env:"LANGUAGE"`
	Ratio    *float64 `env:"RATIO"`
	Mode     string   `env:"MODE"`
	Problem  *int     `env:"PROBLEM"`
}
