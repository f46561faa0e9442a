package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"collectio/internal/application"
	"collectio/internal/bootstrap"
	"collectio/internal/config"
	"collectio/internal/logger"
)

var (
	location string
	notesDir string
	backend  string
	verbose  bool

	container *bootstrap.Container
)

var rootCmd = &cobra.Command{
	Use:   "collectio-cli",
	Short: "CLI for managing note collections",
	Long: `collectio-cli manages named collections of notes.

Every save location keeps its own collections. All Notes always exists,
counts every note and cannot be renamed or deleted. A note can be in any
number of collections; deleting a collection never deletes notes.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if location != "" {
			cfg.SaveLocation = location
		}
		if notesDir != "" {
			cfg.NotesDir = notesDir
		}
		if backend != "" {
			cfg.Backend = backend
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := logger.NewIsolated(cfg.LogFile)
		if verbose {
			log = logger.New(cfg.LogFile, cfg.IsProduction())
		}

		container, err = bootstrap.NewContainer(cfg, log.Named("cli"))
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return nil
		}
		err := container.Close()
		container = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		if container != nil {
			container.Close()
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&location, "location", "l", "", "save location (default from config)")
	rootCmd.PersistentFlags().StringVar(&notesDir, "notes-dir", "", "directory scanned for notes (default: the save location)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log to stderr")
}

// GetContainer returns the initialized container
func GetContainer() *bootstrap.Container {
	return container
}

// errorText prefers the short user message for known error kinds
func errorText(err error) string {
	switch application.KindOf(err) {
	case application.KindUnknown, application.KindValidation:
		return "Error: " + err.Error()
	}
	msg := application.UserMessage(err)
	if verbose {
		msg += " (" + err.Error() + ")"
	}
	return msg
}
