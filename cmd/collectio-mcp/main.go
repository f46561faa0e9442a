package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "collectio/internal/adapters/mcp"
	"collectio/internal/bootstrap"
	"collectio/internal/config"
	"collectio/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("collectio-mcp: %v", err)
	}

	locationFlag := flag.String("location", cfg.SaveLocation, "save location")
	notesFlag := flag.String("notes-dir", cfg.NotesDir, "directory scanned for notes")
	flag.Parse()
	cfg.SaveLocation = *locationFlag
	cfg.NotesDir = *notesFlag

	// stdio carries the protocol, so logs go to the file only
	zlog := logger.NewIsolated(cfg.LogFile).Named("mcp")

	container, err := bootstrap.NewContainer(cfg, zlog)
	if err != nil {
		log.Fatalf("collectio-mcp: %v", err)
	}
	defer container.Close()

	mcpServer := server.NewMCPServer(
		"collectio-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	backend := mcpadapter.Backend{
		Collections: container.Collections,
		Notes:       container.Notes,
		Location:    container.Location(),
	}
	mcpadapter.RegisterReadTools(mcpServer, backend)
	mcpadapter.RegisterWriteTools(mcpServer, backend)

	zlog.Info("serving", zap.String("location", backend.Location))
	if err := server.ServeStdio(mcpServer); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		log.Fatalf("collectio-mcp: %v", err)
	}
}
