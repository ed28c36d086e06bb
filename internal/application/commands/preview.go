package commands

import (
	"context"
	"fmt"
	"strings"

	"kanbanwatch/internal/application"
	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

// PreviewResult contains what a first cycle would do to the board
type PreviewResult struct {
	Settings     domain.Settings
	FilesScanned int
	Additions    domain.AdditionBatch
	Merge        domain.MergeResult
	Original     string
}

// PreviewCommand dry-runs a cycle against an empty snapshot. Nothing is written.
type PreviewCommand struct {
	vault    ports.Vault
	settings domain.Settings
}

// NewPreviewCommand creates a new PreviewCommand
func NewPreviewCommand(vault ports.Vault, settings domain.Settings) *PreviewCommand {
	return &PreviewCommand{vault: vault, settings: settings}
}

// Validate checks that the settings name a folder and a board
func (c *PreviewCommand) Validate() error {
	if err := application.ValidateRequired(application.KeyTargetFolder, c.settings.TargetFolder); err != nil {
		return err
	}
	return application.ValidateRequired(application.KeyKanbanBoardLocation, c.settings.KanbanBoardLocation)
}

// Execute runs the preview
func (c *PreviewCommand) Execute(ctx context.Context) (*PreviewResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	paths, err := c.vault.ListPaths(ctx, c.settings.TargetFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	delta := domain.NewSnapshot().Diff(c.settings.TargetFolder, paths)

	boardPath := strings.TrimSpace(c.settings.KanbanBoardLocation)
	if !c.vault.Exists(boardPath) {
		return nil, fmt.Errorf("%w: %q", application.ErrBoardNotFound, boardPath)
	}
	content, err := c.vault.Read(boardPath)
	if err != nil {
		return nil, &application.BoardError{Op: "read", Path: boardPath, Err: err}
	}

	return &PreviewResult{
		Settings:     c.settings,
		FilesScanned: len(paths),
		Additions:    delta.Added,
		Merge:        domain.MergeBoard(content, delta.Added),
		Original:     content,
	}, nil
}

// Summary renders the preview as text, one entry per line
func (r *PreviewResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d file(s) under %q, %d new link(s)\n", r.FilesScanned, r.Settings.TargetFolder, len(r.Merge.Inserted))
	for _, e := range r.Merge.Inserted {
		fmt.Fprintf(&b, "  + %s\n", e.Line())
	}
	for _, c := range r.Merge.Dropped {
		fmt.Fprintf(&b, "  ! no heading \"## %s\" for %d item(s)\n", c, len(r.Additions.Items(c)))
	}
	return b.String()
}
