package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kanbanwatch/internal/adapters/obsidian"
	"kanbanwatch/internal/application"
)

var openPrintURI bool

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the Kanban board in Obsidian",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := store.Load()
		if err != nil {
			return err
		}
		if err := application.ValidateRequired(application.KeyKanbanBoardLocation, settings.KanbanBoardLocation); err != nil {
			return err
		}

		opener := obsidian.NewOpener(settings.Vault)
		if openPrintURI {
			uri, err := opener.BuildURI(settings.KanbanBoardLocation)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		}
		return opener.OpenFile(settings.KanbanBoardLocation)
	},
}

func init() {
	openCmd.Flags().BoolVar(&openPrintURI, "print", false, "print the obsidian:// URI instead of opening it")
	rootCmd.AddCommand(openCmd)
}
