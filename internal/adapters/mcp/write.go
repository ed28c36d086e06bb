package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"kanbanwatch/internal/application"
	"kanbanwatch/internal/application/commands"
)

// RegisterWriteTools adds the tools that change the board or the settings.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(syncTool(), syncHandler(deps.Engine))
	s.AddTool(configSetTool(), configSetHandler(deps))
}

// --- sync ---

func syncTool() mcp.Tool {
	return mcp.NewTool("sync",
		mcp.WithDescription("Run one reconciliation cycle now: append links for new files in the target folder under their matching board headings."),
	)
}

func syncHandler(engine commands.CycleRunner) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSyncCommand(engine).Execute(ctx)
		if err != nil {
			return mcp.NewToolResultError(result.Message), nil
		}

		text := result.Message
		for _, e := range result.Report.Inserted {
			text += "\n" + e.Line()
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- config_set ---

func configSetTool() mcp.Tool {
	return mcp.NewTool("config_set",
		mcp.WithDescription("Change one setting. Takes effect on the next cycle."),
		mcp.WithString("key",
			mcp.Description("Setting name"),
			mcp.Required(),
			mcp.Enum(application.SettingKeys...),
		),
		mcp.WithString("value",
			mcp.Description("New value (update_time is a positive number of seconds)"),
			mcp.Required(),
		),
	)
}

func configSetHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewConfigureCommand(deps.Settings, req.GetString("key", ""), req.GetString("value", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
