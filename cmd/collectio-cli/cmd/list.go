package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"collectio/internal/application/commands"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

var (
	showCounts bool
	listNotes  []string
)

// explicitNotes counts against note ids given on the command line
type explicitNotes []string

func (n explicitNotes) CurrentNotes(context.Context) (domain.NoteSet, error) {
	return domain.NewNoteSet(n...), nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	Long: `List every collection, All Notes first, then in creation order.

Examples:
  collectio-cli list
  collectio-cli list --counts
  collectio-cli list --location ~/notes/work --counts
  collectio-cli list --counts --notes inbox,projects/roadmap`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		var notes ports.NoteSource = c.Notes
		if cmd.Flags().Changed("notes") {
			notes = explicitNotes(listNotes)
		}

		list, err := commands.NewListCommand(c.Collections, notes, c.Location()).Execute(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, col := range list {
			if showCounts {
				fmt.Fprintf(w, "%s\t%s\t%d\n", col.ID, col.Name, col.NoteCount)
			} else {
				fmt.Fprintf(w, "%s\t%s\n", col.ID, col.Name)
			}
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one collection and its notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		col, err := commands.NewShowCommand(c.Collections, c.Location(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		printCollection(cmd.OutOrStdout(), *col)
		return nil
	},
}

var forNoteCmd = &cobra.Command{
	Use:   "for-note <note-id>",
	Short: "List the collections a note belongs to",
	Long: `List the user collections a note belongs to. All Notes is not listed.

Note IDs are paths relative to the notes directory without .md.

Examples:
  collectio-cli for-note projects/roadmap`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		ctx := context.Background()

		list, err := commands.NewForNoteCommand(c.Collections, c.Location(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		for _, col := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", col.ID, col.Name)
		}
		return nil
	},
}

func printCollection(w io.Writer, c domain.Collection) {
	fmt.Fprintf(w, "ID:       %s\n", c.ID)
	fmt.Fprintf(w, "Name:     %s\n", c.Name)
	if c.Icon != "" {
		fmt.Fprintf(w, "Icon:     %s\n", c.Icon)
	}
	if c.Color != "" {
		fmt.Fprintf(w, "Color:    %s\n", c.Color)
	}
	if c.IsDefault {
		fmt.Fprintln(w, "Notes:    every note")
		return
	}
	fmt.Fprintf(w, "Order:    %d\n", c.SortOrder)
	fmt.Fprintf(w, "Notes:    %s\n", strings.Join(c.NoteIDs, ", "))
}

func init() {
	listCmd.Flags().BoolVarP(&showCounts, "counts", "c", false, "show live note counts")
	listCmd.Flags().StringSliceVar(&listNotes, "notes", nil, "count against these note ids instead of the notes directory")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(forNoteCmd)
}
