package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kanbanwatch/internal/application/commands"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent cycles that found new files",
	Long: `List cycles recorded in the journal, newest first, with the links each
one added. Cycles that saw no new files are not recorded.

Examples:
  kanbanwatch-cli history
  kanbanwatch-cli history --limit 5
  kanbanwatch-cli history --find Alpha/roadmap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		settings, err := store.Load()
		if err != nil {
			return err
		}
		journal, err := openJournal(settings)
		if err != nil {
			return err
		}
		defer journal.Close()

		out := cmd.OutOrStdout()

		if key, _ := cmd.Flags().GetString("find"); key != "" {
			record, err := journal.FindEntry(key)
			if err != nil {
				return err
			}
			if record == nil {
				fmt.Fprintf(out, "%s was not added by any recorded cycle\n", key)
				return nil
			}
			fmt.Fprintf(out, "%s added %s by cycle %s\n", key, record.StartedAt.Format(time.RFC3339), record.ID)
			return nil
		}

		records, err := commands.NewHistoryCommand(journal, historyLimit).Execute(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(out, "No cycles recorded.")
			return nil
		}

		for _, r := range records {
			fmt.Fprintf(out, "%s  %-9s  %d new  %s\n", r.StartedAt.Format("2006-01-02 15:04:05"), r.Outcome, r.Additions, r.Duration)
			if r.Error != "" {
				fmt.Fprintf(out, "    error: %s\n", r.Error)
			}
			for _, e := range r.Inserted {
				fmt.Fprintf(out, "    + %s\n", e.Line())
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", commands.DefaultHistoryLimit, "number of cycles to show")
	historyCmd.Flags().String("find", "", "show which cycle added a category/item link")
	rootCmd.AddCommand(historyCmd)
}
