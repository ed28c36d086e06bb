package ports

import "kanbanwatch/internal/domain"

// SettingsStore persists watcher settings
type SettingsStore interface {
	// Load returns the stored settings merged over the defaults
	Load() (domain.Settings, error)
	Save(settings domain.Settings) error

	// Path returns where the settings live
	Path() string
}
