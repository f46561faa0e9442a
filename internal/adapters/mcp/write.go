package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"collectio/internal/application/commands"
	"collectio/internal/domain"
)

// RegisterWriteTools adds all collection mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, b Backend) {
	s.AddTool(createTool(), createHandler(b))
	s.AddTool(updateTool(), updateHandler(b))
	s.AddTool(deleteTool(), deleteHandler(b))
	s.AddTool(addNoteTool(), membershipHandler(b, commands.MembershipAdd))
	s.AddTool(removeNoteTool(), membershipHandler(b, commands.MembershipRemove))
}

// --- create_collection ---

func createTool() mcp.Tool {
	return mcp.NewTool("create_collection",
		mcp.WithDescription("Create a new collection. It is placed after every existing collection."),
		mcp.WithString("name",
			mcp.Description("Display name"),
			mcp.Required(),
		),
		mcp.WithString("icon",
			mcp.Description("Icon identifier"),
		),
		mcp.WithString("color",
			mcp.Description("Color, e.g. #059669"),
		),
	)
}

func createHandler(b Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateCommand(b.Collections, b.Location,
			req.GetString("name", ""),
			req.GetString("icon", ""),
			req.GetString("color", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_collection ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update_collection",
		mcp.WithDescription("Change the name, icon or color of a collection. Omitted fields are left unchanged. All Notes cannot be changed."),
		mcp.WithString("id",
			mcp.Description("Collection ID"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("New name"),
		),
		mcp.WithString("icon",
			mcp.Description("New icon"),
		),
		mcp.WithString("color",
			mcp.Description("New color"),
		),
	)
}

func updateHandler(b Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var patch domain.Patch
		args := req.GetArguments()
		for key, field := range map[string]**string{"name": &patch.Name, "icon": &patch.Icon, "color": &patch.Color} {
			if v, ok := args[key].(string); ok {
				*field = &v
			}
		}

		result, err := commands.NewUpdateCommand(b.Collections, b.Location, req.GetString("id", ""), patch).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_collection ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_collection",
		mcp.WithDescription("Delete a collection. Its notes are not deleted. All Notes cannot be deleted."),
		mcp.WithString("id",
			mcp.Description("Collection ID"),
			mcp.Required(),
		),
	)
}

func deleteHandler(b Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteCommand(b.Collections, b.Location, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_note_to_collection / remove_note_from_collection ---

func addNoteTool() mcp.Tool {
	return mcp.NewTool("add_note_to_collection",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add a note to a collection. Adding a note twice has no effect."),
		}, membershipParams()...)...,
	)
}

func removeNoteTool() mcp.Tool {
	return mcp.NewTool("remove_note_from_collection",
		append([]mcp.ToolOption{
			mcp.WithDescription("Remove a note from a collection. The note itself is not deleted."),
		}, membershipParams()...)...,
	)
}

func membershipParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("collection_id",
			mcp.Description("Collection ID"),
			mcp.Required(),
		),
		mcp.WithString("note_id",
			mcp.Description("Note ID: the note path relative to the notes directory, without .md"),
			mcp.Required(),
		),
	}
}

func membershipHandler(b Backend, op commands.MembershipOp) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		collectionID := req.GetString("collection_id", "")
		noteID := req.GetString("note_id", "")

		cmd := commands.NewAddNoteCommand(b.Collections, b.Notes, b.Location, collectionID, noteID)
		if op == commands.MembershipRemove {
			cmd = commands.NewRemoveNoteCommand(b.Collections, b.Notes, b.Location, collectionID, noteID)
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
