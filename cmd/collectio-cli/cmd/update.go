package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"collectio/internal/application/commands"
	"collectio/internal/domain"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename or restyle a collection",
	Long: `Change the name, icon or color of a collection. Only the flags given
are changed. All Notes cannot be updated.

Examples:
  collectio-cli update 5b0e... --name "Deep Work"
  collectio-cli update 5b0e... --color "#DC2626"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		var patch domain.Patch
		for flag, field := range map[string]**string{"name": &patch.Name, "icon": &patch.Icon, "color": &patch.Color} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*field = &v
			}
		}

		result, err := commands.NewUpdateCommand(c.Collections, c.Location(), args[0], patch).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a collection",
	Long: `Delete a collection. The notes in it are not deleted.
All Notes cannot be deleted.

Examples:
  collectio-cli delete 5b0e...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		result, err := commands.NewDeleteCommand(c.Collections, c.Location(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	updateCmd.Flags().String("name", "", "new name")
	updateCmd.Flags().String("icon", "", "new icon")
	updateCmd.Flags().String("color", "", "new color")
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
}
