package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"collectio/internal/domain"
	"collectio/internal/ports"
)

// NoteExtension is the file extension of a note
const NoteExtension = ".md"

// NoteSource implements ports.NoteSource by scanning a notes directory.
// A note id is the path relative to the directory without the extension,
// using forward slashes: "projects/roadmap.md" is "projects/roadmap".
type NoteSource struct {
	mu   sync.RWMutex
	root string
}

// Ensure NoteSource implements ports.NoteSource
var _ ports.NoteSource = (*NoteSource)(nil)

// NewNoteSource creates a note source rooted at notesDir
func NewNoteSource(notesDir string) *NoteSource {
	return &NoteSource{root: ExpandPath(notesDir)}
}

// Root returns the scanned directory
func (n *NoteSource) Root() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.root
}

// SetRoot moves the source to another notes directory. Scans already
// running finish against the old one.
func (n *NoteSource) SetRoot(notesDir string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.root = ExpandPath(notesDir)
}

// CurrentNotes walks the notes directory. Hidden files and directories are
// skipped; a missing directory is an empty note set.
func (n *NoteSource) CurrentNotes(ctx context.Context) (domain.NoteSet, error) {
	root := n.Root()
	var ids []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(d.Name()) != NoteExtension {
			return nil
		}

		id, err := noteID(root, path)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewNoteSet(), nil
	}
	if err != nil {
		return domain.NoteSet{}, fmt.Errorf("failed to scan notes: %w", err)
	}

	return domain.NewNoteSet(ids...), nil
}

// NoteID converts a note file path to its id
func (n *NoteSource) NoteID(path string) (string, error) {
	return noteID(n.Root(), path)
}

func noteID(root, path string) (string, error) {
	rel, err := filepath.Rel(root, ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("note %s is outside %s: %w", path, root, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("note %s is outside %s", path, root)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, NoteExtension)), nil
}

// NotePath converts a note id back to its file path
func (n *NoteSource) NotePath(id string) string {
	return filepath.Join(n.Root(), filepath.FromSlash(id)+NoteExtension)
}
