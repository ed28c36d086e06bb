package ports

import (
	"context"
	"time"

	"kanbanwatch/internal/domain"
)

// CycleObserver is told about every cycle, skipped ones included
type CycleObserver interface {
	ObserveCycle(ctx context.Context, report *domain.CycleReport) error
}

// JournalRecord is a cycle as stored in the journal
type JournalRecord struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Outcome   string
	Additions int
	Error     string
	Inserted  []domain.BoardEntry
}

// CycleJournal keeps a durable history of cycles and the entries they inserted
type CycleJournal interface {
	CycleObserver

	// Lifecycle
	Open(dbPath string) error
	Close() error

	// Queries
	Recent(limit int) ([]JournalRecord, error)
	FindEntry(fullKey string) (*JournalRecord, error)

	// Batch updates
	BeginTx(ctx context.Context) (JournalTx, error)
}

// JournalTx represents a transaction for atomic journal writes
type JournalTx interface {
	InsertCycle(record *JournalRecord) error
	InsertEntry(cycleID string, entry domain.BoardEntry) error

	// Transaction control
	Commit() error
	Rollback() error
}
