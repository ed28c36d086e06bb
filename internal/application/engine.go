package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/logging"
	"kanbanwatch/internal/ports"
)

// ChangesDetectedMessage is sent to the notifier when a cycle finds new files
const ChangesDetectedMessage = "Changes detected in the target folder. Updating Kanban board..."

// Engine runs watch-diff-merge cycles. It owns the snapshot of known paths
// for its whole lifetime; the snapshot is never persisted.
type Engine struct {
	vault     ports.Vault
	settings  ports.SettingsStore
	notifier  ports.Notifier
	logger    *slog.Logger
	observers []ports.CycleObserver
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex // guards snapshot and current
	snapshot *domain.Snapshot
	current  domain.Settings

	running atomic.Bool
}

// Option configures the Engine
type Option func(*Engine)

// WithLogger sets the logger used for cycle diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObservers registers observers told about every cycle
func WithObservers(observers ...ports.CycleObserver) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, observers...)
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator replaces the cycle ID generator, for tests
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// NewEngine creates an engine with an empty snapshot
func NewEngine(vault ports.Vault, settings ports.SettingsStore, notifier ports.Notifier, opts ...Option) *Engine {
	e := &Engine{
		vault:    vault,
		settings: settings,
		notifier: notifier,
		logger:   logging.Discard(),
		now:      time.Now,
		newID:    uuid.NewString,
		snapshot: domain.NewSnapshot(),
		current:  domain.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.notifier == nil {
		e.notifier = ports.NotifierFunc(func(string) {})
	}
	return e
}

// SnapshotSize returns the number of paths currently tracked
func (e *Engine) SnapshotSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot.Len()
}

// Settings returns the settings used by the most recent cycle
func (e *Engine) Settings() domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Running reports whether a cycle is in flight
func (e *Engine) Running() bool {
	return e.running.Load()
}

// RunCycle lists the target folder, records new files in the snapshot and
// merges them into the board. It never panics on I/O failure: errors are
// logged and returned in the report. Snapshot additions are kept even when
// the board cannot be updated.
//
// Only one cycle runs at a time; a call made while another is in flight
// returns immediately with Skipped set.
func (e *Engine) RunCycle(ctx context.Context) *domain.CycleReport {
	report := &domain.CycleReport{
		ID:        e.newID(),
		StartedAt: e.now(),
		Additions: domain.NewAdditionBatch(),
	}

	if !e.running.CompareAndSwap(false, true) {
		report.Skipped = true
		report.Err = ErrCycleInProgress
		e.logger.Warn("skipping cycle, previous cycle still running", "cycle_id", report.ID)
		e.observe(ctx, report)
		return report
	}
	defer e.running.Store(false)

	e.runCycle(ctx, report)
	report.Duration = e.now().Sub(report.StartedAt)

	e.logCycle(report)
	e.observe(ctx, report)
	return report
}

func (e *Engine) runCycle(ctx context.Context, report *domain.CycleReport) {
	settings := e.loadSettings()

	if !settings.Configured() {
		report.Err = ErrNotConfigured
		return
	}
	if err := ctx.Err(); err != nil {
		report.Err = err
		return
	}

	paths, err := e.vault.ListPaths(ctx, settings.TargetFolder)
	if err != nil {
		report.Err = fmt.Errorf("failed to list files: %w", err)
		return
	}
	report.FilesScanned = len(paths)

	e.mu.Lock()
	delta := e.snapshot.Diff(settings.TargetFolder, paths)
	report.SnapshotSize = e.snapshot.Len()
	e.mu.Unlock()

	report.Additions = delta.Added
	report.Removed = len(delta.Removed)
	for _, p := range delta.Removed {
		e.logger.Debug("file no longer present", "cycle_id", report.ID, "path", p)
	}

	if delta.Added.IsEmpty() {
		return
	}

	e.notifier.Notify(ChangesDetectedMessage)

	if err := e.updateBoard(settings.KanbanBoardLocation, report); err != nil {
		report.Err = err
	}
}

// updateBoard merges the report's additions into the board document
func (e *Engine) updateBoard(location string, report *domain.CycleReport) error {
	boardPath := strings.TrimSpace(location)
	if boardPath == "" || !e.vault.Exists(boardPath) {
		return fmt.Errorf("%w: %q", ErrBoardNotFound, boardPath)
	}

	content, err := e.vault.Read(boardPath)
	if err != nil {
		return &BoardError{Op: "read", Path: boardPath, Err: err}
	}

	result := domain.MergeBoard(content, report.Additions)
	report.Inserted = result.Inserted
	report.Dropped = result.Dropped

	if !result.Changed() {
		return nil
	}

	if err := e.vault.Write(boardPath, result.Text); err != nil {
		return &BoardError{Op: "write", Path: boardPath, Err: err}
	}
	report.BoardWritten = true
	return nil
}

// loadSettings reloads settings, keeping the last good ones on failure
func (e *Engine) loadSettings() domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.settings == nil {
		return e.current
	}

	settings, err := e.settings.Load()
	if err != nil {
		e.logger.Warn("failed to load settings, using previous values", "error", err)
		return e.current
	}
	e.current = settings
	return settings
}

func (e *Engine) logCycle(report *domain.CycleReport) {
	attrs := []any{
		"cycle_id", report.ID,
		"scanned", report.FilesScanned,
		"additions", report.Additions.Len(),
		"inserted", len(report.Inserted),
		"removed", report.Removed,
		"duration", report.Duration,
	}

	switch {
	case errors.Is(report.Err, ErrNotConfigured):
		e.logger.Warn("cycle skipped", append(attrs, "error", report.Err)...)
	case report.Err != nil:
		e.logger.Error("error updating kanban board", append(attrs, "error", report.Err)...)
	case report.HasAdditions():
		if len(report.Dropped) > 0 {
			attrs = append(attrs, "dropped_categories", report.Dropped)
		}
		e.logger.Info("cycle complete", attrs...)
	default:
		e.logger.Debug("cycle complete", attrs...)
	}
}

func (e *Engine) observe(ctx context.Context, report *domain.CycleReport) {
	for _, o := range e.observers {
		if err := o.ObserveCycle(ctx, report); err != nil {
			e.logger.Warn("cycle observer failed", "cycle_id", report.ID, "error", err)
		}
	}
}
