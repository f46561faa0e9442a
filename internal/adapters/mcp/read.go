// Package mcp exposes the collection service as MCP tools
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"collectio/internal/application"
	"collectio/internal/application/commands"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// Backend is what the tools operate on: one save location and its notes
type Backend struct {
	Collections ports.Collections
	Notes       ports.NoteSource
	Location    string
}

// RegisterReadTools adds all read-only collection tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, b Backend) {
	s.AddTool(listTool(), listHandler(b))
	s.AddTool(forNoteTool(), forNoteHandler(b))
}

// --- list_collections ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_collections",
		mcp.WithDescription("List every collection with its live note count. All Notes comes first and counts every note."),
	)
}

func listHandler(b Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := commands.NewListCommand(b.Collections, b.Notes, b.Location).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, c := range list {
			sb.WriteString(formatWithCount(c))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- collections_for_note ---

func forNoteTool() mcp.Tool {
	return mcp.NewTool("collections_for_note",
		mcp.WithDescription("List the user collections a note belongs to."),
		mcp.WithString("note_id",
			mcp.Description("Note ID: the note path relative to the notes directory, without .md"),
			mcp.Required(),
		),
	)
}

func forNoteHandler(b Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteID := req.GetString("note_id", "")

		list, err := commands.NewForNoteCommand(b.Collections, b.Location, noteID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(list, formatCollection)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf("%s (%s)", err.Error(), application.KindOf(err))), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatCollection(c domain.Collection) string {
	line := fmt.Sprintf("%s  %s", c.ID, c.Name)
	if c.Icon != "" {
		line += "  icon=" + c.Icon
	}
	if c.Color != "" {
		line += "  color=" + c.Color
	}
	return line
}

func formatWithCount(c domain.CollectionWithCount) string {
	return fmt.Sprintf("%s  (%d notes)", formatCollection(c.Collection), c.NoteCount)
}
