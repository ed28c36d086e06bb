package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"kanbanwatch/internal/application/commands"
)

var previewShowBoard bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show what a sync would add, without writing",
	Long: `Dry-run a cycle against an empty snapshot and list the links that would
be appended, along with folders that have no matching heading.

Examples:
  kanbanwatch-cli preview
  kanbanwatch-cli preview --board`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		settings, vault, err := loadVault()
		if err != nil {
			return err
		}

		result, err := commands.NewPreviewCommand(vault, settings).Execute(ctx)
		if err != nil {
			return err
		}

		if previewShowBoard {
			fmt.Fprint(cmd.OutOrStdout(), result.Merge.Text)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), result.Summary())
		return nil
	},
}

func init() {
	previewCmd.Flags().BoolVar(&previewShowBoard, "board", false, "print the whole board as it would be written")
	rootCmd.AddCommand(previewCmd)
}
