package sqlite

import (
	"database/sql"

	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

// journalTx implements ports.JournalTx
type journalTx struct {
	tx *sql.Tx
}

// Ensure journalTx implements JournalTx
var _ ports.JournalTx = (*journalTx)(nil)

// InsertCycle records a cycle
func (t *journalTx) InsertCycle(r *ports.JournalRecord) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO cycles (id, started_at, duration_ms, outcome, additions, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.StartedAt.UnixMilli(), r.Duration.Milliseconds(), r.Outcome, r.Additions, nullString(r.Error))
	return err
}

// InsertEntry records a board entry inserted by a cycle
func (t *journalTx) InsertEntry(cycleID string, entry domain.BoardEntry) error {
	_, err := t.tx.Exec(`
		INSERT OR IGNORE INTO entries (cycle_id, full_key, category, item)
		VALUES (?, ?, ?, ?)
	`, cycleID, entry.FullKey(), entry.Category, entry.Item)
	return err
}

// Commit commits the transaction
func (t *journalTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *journalTx) Rollback() error {
	return t.tx.Rollback()
}

// nullString returns nil for empty strings (for nullable columns)
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
