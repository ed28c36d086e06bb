package domain

import "time"

// CycleReport describes one watch-diff-merge cycle
type CycleReport struct {
	ID           string
	StartedAt    time.Time
	Duration     time.Duration
	FilesScanned int
	SnapshotSize int
	Removed      int
	Additions    AdditionBatch
	Inserted     []BoardEntry
	Dropped      []string
	BoardWritten bool
	Skipped      bool  // Another cycle was still running
	Err          error // Why the cycle ended early, if it did
}

// HasAdditions reports whether the cycle saw new files
func (r *CycleReport) HasAdditions() bool {
	return !r.Additions.IsEmpty()
}

// Outcome returns a short label for the cycle result
func (r *CycleReport) Outcome() string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Err != nil:
		return "error"
	case r.BoardWritten:
		return "updated"
	case r.HasAdditions():
		return "unchanged"
	default:
		return "idle"
	}
}
