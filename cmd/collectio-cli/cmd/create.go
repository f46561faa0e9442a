package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"collectio/internal/application/commands"
)

var (
	createIcon  string
	createColor string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new collection",
	Long: `Create a new collection. It is placed after every existing collection.

Examples:
  collectio-cli create Work
  collectio-cli create "Reading list" --icon book --color "#059669"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		createCmd := commands.NewCreateCommand(c.Collections, c.Location(), args[0], createIcon, createColor)
		result, err := createCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createIcon, "icon", "", "icon identifier")
	createCmd.Flags().StringVar(&createColor, "color", "", "color, e.g. #059669")
	rootCmd.AddCommand(createCmd)
}
