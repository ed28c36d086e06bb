package commands

import (
	"context"

	"kanbanwatch/internal/application"
	"kanbanwatch/internal/ports"
)

// DefaultHistoryLimit is how many cycles history returns by default
const DefaultHistoryLimit = 20

// HistoryCommand lists recent cycles from the journal
type HistoryCommand struct {
	journal ports.CycleJournal
	Limit   int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(journal ports.CycleJournal, limit int) *HistoryCommand {
	return &HistoryCommand{journal: journal, Limit: limit}
}

// Validate checks the limit
func (c *HistoryCommand) Validate() error {
	if c.Limit < 0 {
		return &application.ValidationError{Field: "limit", Message: "limit must not be negative"}
	}
	return nil
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) ([]ports.JournalRecord, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	limit := c.Limit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return c.journal.Recent(limit)
}
