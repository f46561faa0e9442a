// Package bootstrap wires configuration, logging, persistence and the
// collection service for the binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"collectio/internal/adapters/editor"
	"collectio/internal/adapters/filesystem"
	"collectio/internal/adapters/memory"
	"collectio/internal/adapters/sqlite"
	"collectio/internal/application/collections"
	"collectio/internal/application/notify"
	"collectio/internal/config"
	"collectio/internal/ports"
)

// Container holds everything a binary needs for one window
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Blobs       ports.BlobStore
	Collections *collections.Service
	Notes       *filesystem.NoteSource
	Editor      ports.EditorOpener

	mu      sync.RWMutex
	closers []func() error
}

// NewContainer builds the blob store selected by cfg.Backend and the service
// on top of it. A nil logger disables logging.
func NewContainer(cfg *config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Container{
		Config: cfg,
		Logger: log,
		Notes:  filesystem.NewNoteSource(cfg.Notes()),
		Editor: editor.NewOpener(),
	}

	switch cfg.Backend {
	case config.BackendFile:
		c.Blobs = filesystem.NewBlobStore()
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		c.Blobs = db
		c.closers = append(c.closers, db.Close)
	case config.BackendMemory:
		c.Blobs = memory.NewBlobStore()
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	c.Collections = collections.New(c.Blobs, log,
		[]notify.Option{notify.WithWindow(cfg.Debounce)},
	)

	log.Debug("container ready",
		zap.String("backend", cfg.Backend),
		zap.String("location", cfg.SaveLocation),
		zap.String("notes", c.Notes.Root()),
	)
	return c, nil
}

// Location returns the configured save location
func (c *Container) Location() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Config.SaveLocation
}

// Retarget applies the save location and notes directory of a re-read
// config. The backend and the debounce window stay as built. The Store
// cache is keyed per location, so nothing is invalidated here.
func (c *Container) Retarget(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg.SaveLocation != c.Config.SaveLocation {
		c.Logger.Info("save location changed",
			zap.String("from", c.Config.SaveLocation),
			zap.String("to", cfg.SaveLocation),
		)
	}
	c.Config.SaveLocation = cfg.SaveLocation
	c.Config.NotesDir = cfg.NotesDir

	if notes := filesystem.ExpandPath(c.Config.Notes()); notes != c.Notes.Root() {
		c.Logger.Info("notes directory changed",
			zap.String("from", c.Notes.Root()),
			zap.String("to", notes),
		)
		c.Notes.SetRoot(notes)
	}
}

// EditableFile reports the collections file for location when the backend
// stores one that can be opened in an editor.
func (c *Container) EditableFile(location string) (string, bool) {
	if c.Config.Backend != config.BackendFile {
		return "", false
	}
	return c.Collections.Path(location), true
}

// ErrNoLocationIndex is returned by Locations for backends that keep no
// index of save locations
var ErrNoLocationIndex = errors.New("only the sqlite backend keeps an index of save locations")

// Locations lists every save location the sqlite backend holds collections
// for, together with the database file.
func (c *Container) Locations(ctx context.Context) (dbPath string, locations []string, err error) {
	db, ok := c.Blobs.(*sqlite.BlobStore)
	if !ok {
		return "", nil, ErrNoLocationIndex
	}
	locations, err = db.Locations(ctx)
	return db.DBPath(), locations, err
}

// Close cancels pending notifications and releases the backend
func (c *Container) Close() error {
	c.Collections.Cleanup()

	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	_ = c.Logger.Sync()
	return errors.Join(errs...)
}
