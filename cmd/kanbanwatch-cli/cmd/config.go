package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kanbanwatch/internal/adapters/editor"
	"kanbanwatch/internal/application"
	"kanbanwatch/internal/application/commands"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change the settings read at the start of every cycle.

Keys: vault, target_folder, kanban_board_location, update_time (seconds).

Examples:
  kanbanwatch-cli config show
  kanbanwatch-cli config set target_folder Projects
  kanbanwatch-cli config set kanban_board_location Boards/Kanban.md
  kanbanwatch-cli config edit`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := store.Load()
		if err != nil {
			return err
		}

		for _, key := range application.SettingKeys {
			value, _ := application.SettingValue(settings, key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key, value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewConfigureCommand(store, args[0], args[1]).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), store.Path())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := store.Path()

		// Write the defaults first so the editor has something to show
		if _, err := os.Stat(path); os.IsNotExist(err) {
			settings, err := store.Load()
			if err != nil {
				return err
			}
			if err := store.Save(settings); err != nil {
				return err
			}
		}

		return editor.NewOpener().OpenFile(path)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}
