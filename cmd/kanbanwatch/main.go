package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"kanbanwatch/internal/adapters/editor"
	"kanbanwatch/internal/adapters/filesystem"
	"kanbanwatch/internal/adapters/obsidian"
	"kanbanwatch/internal/adapters/sqlite"
	"kanbanwatch/internal/adapters/tui"
	"kanbanwatch/internal/application"
	"kanbanwatch/internal/config"
	"kanbanwatch/internal/logging"
	"kanbanwatch/internal/ports"
)

func main() {
	configFlag := flag.String("config", "", "settings file (default $XDG_CONFIG_HOME/kanbanwatch/config.yaml)")
	levelFlag := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	if err := run(*configFlag, *levelFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	// Logs go to a file so they don't draw over the alternate screen
	logFile, err := logging.OpenFile(filepath.Join(config.DataDir(), "kanbanwatch.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logging.Options{Writer: logFile, Level: level})

	store := config.NewStore(configPath)
	settings, err := store.Load()
	if err != nil {
		return err
	}

	var observers []ports.CycleObserver
	journal := sqlite.NewJournal()
	if err := journal.Open(sqlite.DatabasePath(config.DataDir(), settings.Vault)); err != nil {
		logger.Warn("cycle journal unavailable", "error", err)
	} else {
		defer journal.Close()
		observers = append(observers, journal)
	}

	notices := tui.NewChannelNotifier(16)
	engine := application.NewEngine(filesystem.NewVault(settings.Vault), store, notices,
		application.WithLogger(logger),
		application.WithObservers(observers...),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tui.NewApp(ctx, tui.Config{
		Engine:     engine,
		Opener:     obsidian.NewOpener(settings.Vault),
		Editor:     editor.NewOpener(),
		Notices:    notices,
		ConfigPath: store.Path(),
	})

	logger.Info("dashboard started", slog.String("vault", settings.Vault))
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
