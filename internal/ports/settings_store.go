package ports

import "github.com/aalvaropc/blanks/internal/domain"

// SettingsStore persists the last used game settings between runs.
type SettingsStore interface {
	LoadSettings(defaults domain.Settings) (domain.Settings, error)
	SaveSettings(s domain.Settings) error
}
