package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

const schemaVersion = "1"

// Journal implements ports.CycleJournal using SQLite
type Journal struct {
	db     *sql.DB
	dbPath string
}

// Ensure Journal implements CycleJournal
var _ ports.CycleJournal = (*Journal)(nil)

// NewJournal creates a new SQLite journal
func NewJournal() *Journal {
	return &Journal{}
}

// Open initializes the journal database at dbPath
func (j *Journal) Open(dbPath string) error {
	j.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	j.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS cycles (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			additions INTEGER NOT NULL,
			error TEXT
		);
		CREATE TABLE IF NOT EXISTS entries (
			cycle_id TEXT NOT NULL REFERENCES cycles(id),
			full_key TEXT NOT NULL,
			category TEXT NOT NULL,
			item TEXT NOT NULL,
			PRIMARY KEY (cycle_id, full_key)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_cycles_started ON cycles(started_at);
		CREATE INDEX IF NOT EXISTS idx_entries_key ON entries(full_key);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// ObserveCycle records a cycle that saw new files, with the entries it
// inserted. Other cycles are not recorded.
func (j *Journal) ObserveCycle(ctx context.Context, report *domain.CycleReport) error {
	if report.Skipped || !report.HasAdditions() {
		return nil
	}

	record := &ports.JournalRecord{
		ID:        report.ID,
		StartedAt: report.StartedAt,
		Duration:  report.Duration,
		Outcome:   report.Outcome(),
		Additions: report.Additions.Len(),
	}
	if report.Err != nil {
		record.Error = report.Err.Error()
	}

	tx, err := j.BeginTx(ctx)
	if err != nil {
		return err
	}
	if err := tx.InsertCycle(record); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record cycle: %w", err)
	}
	for _, entry := range report.Inserted {
		if err := tx.InsertEntry(report.ID, entry); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record entry %s: %w", entry.FullKey(), err)
		}
	}
	return tx.Commit()
}

// Recent returns the latest cycles, newest first, with their entries
func (j *Journal) Recent(limit int) ([]ports.JournalRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, started_at, duration_ms, outcome, additions, error
		FROM cycles ORDER BY started_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	var records []ports.JournalRecord
	for rows.Next() {
		r, err := scanCycle(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, *r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		entries, err := j.entriesFor(records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Inserted = entries
	}
	return records, nil
}

// FindEntry returns the cycle that inserted fullKey, or nil if none did
func (j *Journal) FindEntry(fullKey string) (*ports.JournalRecord, error) {
	row := j.db.QueryRow(`
		SELECT c.id, c.started_at, c.duration_ms, c.outcome, c.additions, c.error
		FROM entries e JOIN cycles c ON c.id = e.cycle_id
		WHERE e.full_key = ?
		ORDER BY c.started_at ASC LIMIT 1
	`, fullKey)

	r, err := scanCycle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.Inserted, err = j.entriesFor(r.ID)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BeginTx starts a new transaction
func (j *Journal) BeginTx(ctx context.Context) (ports.JournalTx, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &journalTx{tx: tx}, nil
}

func (j *Journal) entriesFor(cycleID string) ([]domain.BoardEntry, error) {
	rows, err := j.db.Query(`
		SELECT category, item FROM entries WHERE cycle_id = ? ORDER BY rowid
	`, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.BoardEntry
	for rows.Next() {
		var e domain.BoardEntry
		if err := rows.Scan(&e.Category, &e.Item); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCycle(s scanner) (*ports.JournalRecord, error) {
	var r ports.JournalRecord
	var startedMs, durationMs int64
	var errText sql.NullString

	if err := s.Scan(&r.ID, &startedMs, &durationMs, &r.Outcome, &r.Additions, &errText); err != nil {
		return nil, err
	}
	r.StartedAt = time.UnixMilli(startedMs)
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.Error = errText.String
	return &r, nil
}

// DatabasePath returns the journal location for a vault inside dataDir
func DatabasePath(dataDir, vaultPath string) string {
	return filepath.Join(dataDir, hashVaultPath(vaultPath)+".db")
}

// hashVaultPath returns a short hash of the vault path
func hashVaultPath(vaultPath string) string {
	h := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}
