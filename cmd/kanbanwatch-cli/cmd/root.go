package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"kanbanwatch/internal/adapters/filesystem"
	"kanbanwatch/internal/adapters/sqlite"
	"kanbanwatch/internal/config"
	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/logging"
	"kanbanwatch/internal/ports"
)

var (
	configPath string
	vaultPath  string
	logLevel   string
	logJSON    bool

	store  ports.SettingsStore
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kanbanwatch-cli",
	Short: "Keep an Obsidian Kanban board in sync with a folder",
	Long: `kanbanwatch-cli watches a folder of an Obsidian vault and appends a
checklist link for every new note under the board heading named after the
note's first subfolder.

A note Projects/Alpha/roadmap.md becomes "- [ ] [[Alpha/roadmap|roadmap]]" under
"##Alpha". Links already on the board are never added twice.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger = logging.New(logging.Options{Level: level, JSON: logJSON})

		store = &vaultOverride{SettingsStore: config.NewStore(configPath)}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (default $XDG_CONFIG_HOME/kanbanwatch/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", "", "path to the vault (overrides the settings file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
}

// vaultOverride applies the --vault flag on top of the stored settings
type vaultOverride struct {
	ports.SettingsStore
}

func (o *vaultOverride) Load() (domain.Settings, error) {
	settings, err := o.SettingsStore.Load()
	if vaultPath != "" {
		settings.Vault = config.ExpandHome(vaultPath)
	}
	return settings, err
}

// loadVault loads the settings and opens the vault they name
func loadVault() (domain.Settings, *filesystem.Vault, error) {
	settings, err := store.Load()
	if err != nil {
		return settings, nil, err
	}
	if info, err := os.Stat(settings.Vault); err != nil || !info.IsDir() {
		return settings, nil, fmt.Errorf("vault not found: %s", settings.Vault)
	}
	return settings, filesystem.NewVault(settings.Vault), nil
}

// openJournal opens the cycle journal kept for the vault
func openJournal(settings domain.Settings) (*sqlite.Journal, error) {
	journal := sqlite.NewJournal()
	if err := journal.Open(sqlite.DatabasePath(config.DataDir(), settings.Vault)); err != nil {
		return nil, err
	}
	return journal, nil
}
