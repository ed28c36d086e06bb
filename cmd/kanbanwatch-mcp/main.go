package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"kanbanwatch/internal/adapters/filesystem"
	mcpadapter "kanbanwatch/internal/adapters/mcp"
	"kanbanwatch/internal/adapters/scheduler"
	"kanbanwatch/internal/adapters/sqlite"
	"kanbanwatch/internal/application"
	"kanbanwatch/internal/config"
	"kanbanwatch/internal/logging"
	"kanbanwatch/internal/ports"
)

func main() {
	configFlag := flag.String("config", "", "settings file (default $XDG_CONFIG_HOME/kanbanwatch/config.yaml)")
	watchFlag := flag.Bool("watch", false, "also run cycles on the update_time interval")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr
	logger := logging.New(logging.Options{Writer: os.Stderr})

	store := config.NewStore(*configFlag)
	settings, err := store.Load()
	if err != nil {
		log.Fatalf("kanbanwatch-mcp: %v", err)
	}

	vault := filesystem.NewVault(settings.Vault)
	var observers []ports.CycleObserver

	var journal ports.CycleJournal
	j := sqlite.NewJournal()
	if err := j.Open(sqlite.DatabasePath(config.DataDir(), settings.Vault)); err != nil {
		logger.Warn("cycle journal unavailable", "error", err)
	} else {
		defer j.Close()
		journal = j
		observers = append(observers, j)
	}

	engine := application.NewEngine(vault, store, nil,
		application.WithLogger(logger),
		application.WithObservers(observers...),
	)

	mcpServer := server.NewMCPServer(
		"kanbanwatch-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	deps := mcpadapter.Deps{Engine: engine, Vault: vault, Settings: store, Journal: journal}
	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if *watchFlag {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ticker := scheduler.NewDynamicTicker(func() time.Duration {
			return engine.Settings().Interval()
		})
		go ticker.Run(ctx, func(ctx context.Context) { engine.RunCycle(ctx) })
	}

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("kanbanwatch-mcp: %v", err)
	}
}
