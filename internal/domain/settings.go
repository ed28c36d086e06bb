package domain

import (
	"strconv"
	"strings"
	"time"
)

// DefaultUpdateTime is the default poll interval in seconds
const DefaultUpdateTime = 30

// Settings holds the watcher configuration
type Settings struct {
	Vault               string // Vault root on disk
	TargetFolder        string // Vault-relative folder to watch (e.g., "Projects")
	KanbanBoardLocation string // Vault-relative board file (e.g., "Boards/Kanban.md")
	UpdateTime          int    // Poll interval in seconds
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{UpdateTime: DefaultUpdateTime}
}

// Interval returns the poll interval, falling back to the default when
// UpdateTime is not positive.
func (s Settings) Interval() time.Duration {
	if s.UpdateTime <= 0 {
		return DefaultUpdateTime * time.Second
	}
	return time.Duration(s.UpdateTime) * time.Second
}

// Configured reports whether a target folder has been set
func (s Settings) Configured() bool {
	return strings.TrimSpace(s.TargetFolder) != ""
}

// ParseUpdateTime parses an interval in seconds. Unparseable or non-positive
// input yields DefaultUpdateTime and ok=false.
func ParseUpdateTime(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return DefaultUpdateTime, false
	}
	return n, true
}
