package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"kanbanwatch/internal/application/commands"
	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

// Engine is the part of the reconciliation engine the tools use
type Engine interface {
	commands.CycleRunner
	SnapshotSize() int
	Settings() domain.Settings
	Running() bool
}

// Deps are the collaborators shared by every tool. Journal may be nil.
type Deps struct {
	Engine   Engine
	Vault    ports.Vault
	Settings ports.SettingsStore
	Journal  ports.CycleJournal
}

// RegisterReadTools adds the tools that never modify the board.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(statusTool(), statusHandler(deps))
	s.AddTool(previewTool(), previewHandler(deps))
	if deps.Journal != nil {
		s.AddTool(historyTool(), historyHandler(deps.Journal))
	}
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Show the watcher settings and how many files the snapshot tracks."),
	)
}

func statusHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		settings, err := deps.Settings.Load()
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "vault: %s\n", settings.Vault)
		fmt.Fprintf(&sb, "target_folder: %s\n", settings.TargetFolder)
		fmt.Fprintf(&sb, "kanban_board_location: %s\n", settings.KanbanBoardLocation)
		fmt.Fprintf(&sb, "update_time: %ds\n", settings.UpdateTime)
		fmt.Fprintf(&sb, "tracked files: %d\n", deps.Engine.SnapshotSize())
		fmt.Fprintf(&sb, "cycle running: %t\n", deps.Engine.Running())
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- preview ---

func previewTool() mcp.Tool {
	return mcp.NewTool("preview",
		mcp.WithDescription("Dry-run a first cycle: list the links that would be appended to the Kanban board and the folders with no matching heading. Nothing is written."),
	)
}

func previewHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		settings, err := deps.Settings.Load()
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewPreviewCommand(deps.Vault, settings).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Summary()), nil
	}
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recent cycles that found new files, newest first, with the links they added."),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of cycles (default %d)", commands.DefaultHistoryLimit)),
		),
	)
}

func historyHandler(journal ports.CycleJournal) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		records, err := commands.NewHistoryCommand(journal, req.GetInt("limit", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(records, formatRecord)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatRecord(r ports.JournalRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s  %s  %d new", r.StartedAt.Format(time.RFC3339), r.ID, r.Outcome, r.Additions)
	if r.Error != "" {
		fmt.Fprintf(&sb, "  error: %s", r.Error)
	}
	for _, e := range r.Inserted {
		fmt.Fprintf(&sb, "\n  %s", e.Line())
	}
	return sb.String()
}
