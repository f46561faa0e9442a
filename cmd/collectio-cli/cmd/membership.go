package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"collectio/internal/application/commands"
)

var addCmd = &cobra.Command{
	Use:   "add <collection-id> <note-id>",
	Short: "Add a note to a collection",
	Long: `Add a note to a collection. Adding a note that is already a member
changes nothing.

Examples:
  collectio-cli add 5b0e... projects/roadmap`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMembership(cmd, commands.MembershipAdd, args[0], args[1])
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <collection-id> <note-id>",
	Short: "Remove a note from a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMembership(cmd, commands.MembershipRemove, args[0], args[1])
	},
}

func runMembership(cmd *cobra.Command, op commands.MembershipOp, collectionID, noteID string) error {
	c := GetContainer()
	ctx := context.Background()

	membershipCmd := commands.NewAddNoteCommand(c.Collections, c.Notes, c.Location(), collectionID, noteID)
	if op == commands.MembershipRemove {
		membershipCmd = commands.NewRemoveNoteCommand(c.Collections, c.Notes, c.Location(), collectionID, noteID)
	}
	result, err := membershipCmd.Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
}
