package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"kanbanwatch/internal/adapters/notify"
	"kanbanwatch/internal/application"
	"kanbanwatch/internal/application/commands"
	"kanbanwatch/internal/ports"
)

var syncNoJournal bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one cycle and exit",
	Long: `Run a single reconciliation cycle. Every file under the target folder is
considered new, and its link is appended unless the board already has it.

Examples:
  kanbanwatch-cli sync
  kanbanwatch-cli sync --vault ~/Notes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		settings, vault, err := loadVault()
		if err != nil {
			return err
		}

		var observers []ports.CycleObserver
		if !syncNoJournal {
			journal, err := openJournal(settings)
			if err != nil {
				logger.Warn("cycle journal unavailable", "error", err)
			} else {
				defer journal.Close()
				observers = append(observers, journal)
			}
		}

		engine := application.NewEngine(vault, store, notify.NewTerminal(cmd.ErrOrStderr()),
			application.WithLogger(logger),
			application.WithObservers(observers...),
		)

		result, err := commands.NewSyncCommand(engine).Execute(ctx)
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		for _, e := range result.Report.Inserted {
			fmt.Fprintf(cmd.OutOrStdout(), "  + %s\n", e.Line())
		}
		return err
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncNoJournal, "no-journal", false, "do not record the cycle in the journal")
	rootCmd.AddCommand(syncCmd)
}
