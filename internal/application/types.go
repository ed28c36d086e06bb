package application

import "kanbanwatch/internal/domain"

// Re-export domain types for use by adapters
type (
	Settings      = domain.Settings
	CycleReport   = domain.CycleReport
	BoardEntry    = domain.BoardEntry
	AdditionBatch = domain.AdditionBatch
	MergeResult   = domain.MergeResult
)

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return domain.DefaultSettings()
}
