// Package config loads collectio settings from an optional YAML file and
// COLLECTIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSaveLocation = "~/Documents/notes"
	DefaultBackend      = BackendFile
	DefaultDebounce     = 300 * time.Millisecond
)

// Backends selectable with COLLECTIO_BACKEND
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds every setting the binaries use
type Config struct {
	// SaveLocation is the directory whose collections are managed
	SaveLocation string `mapstructure:"save_location"`
	// NotesDir is scanned for notes; empty means SaveLocation
	NotesDir string        `mapstructure:"notes_dir"`
	Backend  string        `mapstructure:"backend"`
	DBPath   string        `mapstructure:"db_path"`
	Debounce time.Duration `mapstructure:"debounce"`
	LogFile  string        `mapstructure:"log_file"`
	Env      string        `mapstructure:"env"`
}

// IsProduction reports whether console logging should be off
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Notes returns the directory to scan for notes
func (c *Config) Notes() string {
	if c.NotesDir != "" {
		return c.NotesDir
	}
	return c.SaveLocation
}

// Validate checks values viper cannot
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SaveLocation) == "" {
		return errors.New("save_location must not be empty")
	}
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (expected file, sqlite or memory)", c.Backend)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	}
	return nil
}

// Load reads the config file (if any) and the environment
func Load() (*Config, error) {
	return LoadFile(FilePath())
}

// LoadFile is Load with an explicit config file. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("save_location", DefaultSaveLocation)
	v.SetDefault("notes_dir", "")
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("db_path", "")
	v.SetDefault("debounce", DefaultDebounce)
	v.SetDefault("log_file", DefaultLogFile())
	v.SetDefault("env", "development")

	v.SetEnvPrefix("COLLECTIO")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FilePath returns $COLLECTIO_CONFIG or the XDG config file
func FilePath() string {
	if env := os.Getenv("COLLECTIO_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "collectio", "config.yaml")
}

// DefaultLogFile returns the log file in the XDG state directory
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "collectio", "collectio.log")
}
