package commands

import (
	"context"
	"fmt"
	"strings"

	"kanbanwatch/internal/domain"
)

// CycleRunner runs one reconciliation cycle
type CycleRunner interface {
	RunCycle(ctx context.Context) *domain.CycleReport
}

// SyncResult contains the result of a sync
type SyncResult struct {
	Report  *domain.CycleReport
	Message string
}

// SyncCommand runs a single cycle on demand
type SyncCommand struct {
	engine CycleRunner
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(engine CycleRunner) *SyncCommand {
	return &SyncCommand{engine: engine}
}

// Execute runs the sync command. The cycle's own error is returned so
// callers can exit non-zero; the report is always set.
func (c *SyncCommand) Execute(ctx context.Context) (*SyncResult, error) {
	report := c.engine.RunCycle(ctx)
	return &SyncResult{
		Report:  report,
		Message: SummarizeCycle(report),
	}, report.Err
}

// SummarizeCycle renders a one-line description of a cycle
func SummarizeCycle(r *domain.CycleReport) string {
	switch {
	case r.Skipped:
		return "Skipped: a previous cycle is still running"
	case r.Err != nil:
		return fmt.Sprintf("Cycle failed: %v", r.Err)
	case !r.HasAdditions():
		return fmt.Sprintf("No new files (%d tracked)", r.SnapshotSize)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d new file(s), added %d to the board", r.Additions.Len(), len(r.Inserted))
	if len(r.Dropped) > 0 {
		fmt.Fprintf(&b, "; no heading for: %s", quoteCategories(r.Dropped))
	}
	return b.String()
}

func quoteCategories(categories []string) string {
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, ", ")
}
