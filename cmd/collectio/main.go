package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"collectio/internal/adapters/tui"
	"collectio/internal/adapters/tui/views"
	"collectio/internal/application/commands"
	"collectio/internal/bootstrap"
	"collectio/internal/config"
	"collectio/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	locationFlag := flag.String("location", "", "save location (overrides config)")
	notesFlag := flag.String("notes-dir", "", "directory scanned for notes")
	prune := flag.Bool("prune", false, "drop memberships of deleted notes before starting")
	flag.Parse()

	applyFlags := func(c *config.Config) {
		if *locationFlag != "" {
			c.SaveLocation = *locationFlag
		}
		if *notesFlag != "" {
			c.NotesDir = *notesFlag
		}
	}
	applyFlags(cfg)

	// the terminal belongs to bubbletea
	zlog := logger.NewIsolated(cfg.LogFile)

	container, err := bootstrap.NewContainer(cfg, zlog)
	if err != nil {
		return err
	}
	defer container.Close()

	if *prune {
		res, err := commands.NewPruneCommand(container.Collections, container.Notes, container.Location()).Execute(context.Background())
		if err != nil {
			return err
		}
		zlog.Info(res.Message)
	}

	return tui.Run(tui.Options{
		Backend: views.Backend{
			Collections: container.Collections,
			Notes:       container.Notes,
			Location:    container.Location,
		},
		EditableFile: container.EditableFile,
		Editor:       container.Editor,
		ReloadConfig: func() error {
			fresh, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(fresh)
			container.Retarget(fresh)
			return nil
		},
		Logger: zlog,
	})
}
