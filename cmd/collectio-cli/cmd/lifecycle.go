package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"collectio/internal/application/commands"
)

var noteCreatedCmd = &cobra.Command{
	Use:   "note-created <note-id>",
	Short: "Report a newly created note",
	Long: `Report a note created by another tool. New notes join no collection;
this only refreshes counts for running windows of this process.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		result, err := commands.NewNoteCreatedCommand(c.Collections, c.Notes, c.Location(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var noteDeletedCmd = &cobra.Command{
	Use:   "note-deleted <note-id>...",
	Short: "Remove deleted notes from every collection",
	Long: `Remove one or more deleted notes from every collection with a single save.

Examples:
  collectio-cli note-deleted inbox/old-idea
  collectio-cli note-deleted a b c`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		result, err := commands.NewNoteDeletedCommand(c.Collections, c.Notes, c.Location(), args...).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop members whose notes no longer exist",
	Long: `Compare every collection with the notes directory and remove members
whose note files are gone, e.g. after notes were deleted outside collectio.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		result, err := commands.NewPruneCommand(c.Collections, c.Notes, c.Location()).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCreatedCmd)
	rootCmd.AddCommand(noteDeletedCmd)
	rootCmd.AddCommand(pruneCmd)
}
