package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collectio/internal/config"
	"collectio/internal/domain"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		SaveLocation: dir,
		Backend:      backend,
		DBPath:       filepath.Join(dir, "collections.db"),
		Debounce:     config.DefaultDebounce,
	}
}

func TestNewContainer_Backends(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite, config.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			c, err := NewContainer(cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, c.Close()) })

			created, err := c.Collections.Create(context.Background(), c.Location(), domain.CreateInput{Name: "Work"})
			require.NoError(t, err)

			c.Collections.Invalidate()
			got, err := c.Collections.GetCollection(context.Background(), c.Location(), created.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Work", got.Name)
		})
	}
}

func TestNewContainer_FileBackendWritesIntoLocation(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	c, err := NewContainer(cfg, nil)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Collections.Create(context.Background(), c.Location(), domain.CreateInput{Name: "Work"})
	require.NoError(t, err)

	path, ok := c.EditableFile(c.Location())
	require.True(t, ok)
	assert.Equal(t, filepath.Join(cfg.SaveLocation, "collections.json"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewContainer_UnknownBackend(t *testing.T) {
	_, err := NewContainer(testConfig(t, "etcd"), nil)
	assert.Error(t, err)
}

func TestContainer_Locations(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t, config.BackendSQLite)
	c, err := NewContainer(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	_, err = c.Collections.Create(ctx, c.Location(), domain.CreateInput{Name: "Work"})
	require.NoError(t, err)

	dbPath, locations, err := c.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.DBPath, dbPath)
	assert.Equal(t, []string{cfg.SaveLocation}, locations)

	mem, err := NewContainer(testConfig(t, config.BackendMemory), nil)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, mem.Close()) })

	_, _, err = mem.Locations(ctx)
	assert.ErrorIs(t, err, ErrNoLocationIndex)
}

func TestContainer_Retarget(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	c, err := NewContainer(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	notesDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(notesDir, "fresh.md"), []byte("# fresh\n"), 0644))

	c.Retarget(&config.Config{SaveLocation: "/elsewhere", NotesDir: notesDir})

	assert.Equal(t, "/elsewhere", c.Location())
	assert.Equal(t, notesDir, c.Notes.Root())

	notes, err := c.Notes.CurrentNotes(context.Background())
	require.NoError(t, err)
	assert.True(t, notes.Contains("fresh"), "the note source must scan the new directory")

	// without a notes dir the save location is scanned
	c.Retarget(&config.Config{SaveLocation: notesDir})
	assert.Equal(t, notesDir, c.Notes.Root())
}
