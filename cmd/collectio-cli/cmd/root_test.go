package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"collectio/internal/application"
)

func setupCLI(t *testing.T) (loc string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("COLLECTIO_CONFIG", filepath.Join(tmp, "absent.yaml"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("COLLECTIO_BACKEND", "file")

	loc = filepath.Join(tmp, "vault")
	for _, note := range []string{"inbox.md", "projects/roadmap.md"} {
		path := filepath.Join(loc, note)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("# note\n"), 0644); err != nil {
			t.Fatalf("write note: %v", err)
		}
	}
	return loc
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if container != nil {
		container.Close()
		container = nil
	}
	listNotes = nil
	backend = ""
	listCmd.Flags().Lookup("notes").Changed = false
	return out.String(), err
}

func TestCLI_CollectionLifecycle(t *testing.T) {
	loc := setupCLI(t)

	out, err := run(t, "create", "Work", "--color", "#059669", "--location", loc)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(out, "Created collection: Work (") {
		t.Fatalf("unexpected output %q", out)
	}
	id := strings.TrimSuffix(strings.TrimSpace(out[strings.LastIndex(out, "(")+1:]), ")")

	if _, err := run(t, "add", id, "projects/roadmap", "--location", loc); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err = run(t, "list", "--counts", "--location", loc)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "all") || !strings.HasSuffix(lines[0], "2") {
		t.Errorf("expected All Notes with 2 notes, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "1") {
		t.Errorf("expected Work with 1 note, got %q", lines[1])
	}

	out, err = run(t, "for-note", "projects/roadmap", "--location", loc)
	if err != nil || !strings.Contains(out, "Work") {
		t.Errorf("for-note: out=%q err=%v", out, err)
	}

	if _, err := run(t, "note-deleted", "projects/roadmap", "--location", loc); err != nil {
		t.Fatalf("note-deleted: %v", err)
	}
	out, err = run(t, "show", id, "--location", loc)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if strings.Contains(out, "projects/roadmap") {
		t.Errorf("deleted note still listed: %q", out)
	}

	if _, err := run(t, "delete", id, "--location", loc); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(loc, "collections.json")); err != nil {
		t.Errorf("expected collections file in save location: %v", err)
	}
}

func TestCLI_ProtectedCollection(t *testing.T) {
	loc := setupCLI(t)

	_, err := run(t, "delete", "all", "--location", loc)
	if !errors.Is(err, application.ErrProtected) {
		t.Fatalf("expected protected error, got %v", err)
	}
	if got := errorText(err); got != "The All Notes collection can't be changed." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestCLI_ListWithExplicitNotes(t *testing.T) {
	loc := setupCLI(t)

	out, err := run(t, "list", "--counts", "--notes", "a,b,c", "--location", loc)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "3") {
		t.Errorf("expected All Notes to count the 3 given notes, got %q", out)
	}
}

func TestCLI_Locations(t *testing.T) {
	loc := setupCLI(t)

	_, err := run(t, "locations", "--location", loc)
	if err == nil || !strings.Contains(err.Error(), "only the sqlite backend") {
		t.Fatalf("expected sqlite-only error for the file backend, got %v", err)
	}

	dbPath := filepath.Join(t.TempDir(), "collections.db")
	t.Setenv("COLLECTIO_DB_PATH", dbPath)
	if _, err := run(t, "create", "Work", "--backend", "sqlite", "--location", loc); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := run(t, "locations", "--backend", "sqlite", "--location", loc)
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	if !strings.Contains(out, "Database: "+dbPath) || !strings.Contains(out, loc) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unknown", errors.New("accepts 1 arg(s)"), "Error: accepts 1 arg(s)"},
		{"validation", &application.ValidationError{Field: "name", Message: "name is required"}, "Error: name: name is required"},
		{"write", &application.PersistenceWriteError{Location: "/x", Err: errors.New("disk full")}, "Your changes could not be saved. Try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorText(tt.err); got != tt.want {
				t.Errorf("errorText() = %q, want %q", got, tt.want)
			}
		})
	}
}
