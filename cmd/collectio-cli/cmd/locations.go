package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List save locations stored in the sqlite database",
	Long: `List every save location that has collections in the sqlite database.
Only available with the sqlite backend.

Examples:
  collectio-cli locations --backend sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()

		dbPath, locations, err := c.Locations(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database: %s\n", dbPath)
		if len(locations) == 0 {
			fmt.Fprintln(out, "No save locations yet")
			return nil
		}
		for _, loc := range locations {
			fmt.Fprintln(out, loc)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locationsCmd)
}
