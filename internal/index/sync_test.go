package index

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/conelabs/conedit/internal/storage"
)

func testVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return dir, store
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSync_IndexesNewFiles(t *testing.T) {
	s := testStore(t)
	dir, store := testVault(t)

	writeFile(t, dir, "one.md", "# One\n[[Two]]")
	writeFile(t, dir, "sub/two.md", "# Two")

	if err := Sync(s, store, discardLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	_, total, err := s.Notes(10, 0)
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if total != 2 {
		t.Errorf("indexed notes = %d, want 2", total)
	}
}

func TestSync_SkipsUnchanged(t *testing.T) {
	s := testStore(t)
	dir, store := testVault(t)
	writeFile(t, dir, "same.md", "# Same")

	if err := Sync(s, store, discardLogger()); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	before, _ := s.NoteInfo("same.md")

	if err := Sync(s, store, discardLogger()); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	after, _ := s.NoteInfo("same.md")

	if !after.ModifiedAt.Equal(before.ModifiedAt) {
		t.Errorf("modified_at moved on unchanged file: %v -> %v", before.ModifiedAt, after.ModifiedAt)
	}
}

func TestSync_ReindexesChangedFiles(t *testing.T) {
	s := testStore(t)
	dir, store := testVault(t)
	writeFile(t, dir, "edit.md", "# Old Title")

	if err := Sync(s, store, discardLogger()); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	// Push the mtime forward so the change is visible.
	path := filepath.Join(dir, "edit.md")
	if err := os.WriteFile(path, []byte("# New Title"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	if err := Sync(s, store, discardLogger()); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	info, _ := s.NoteInfo("edit.md")
	if info.Title != "New Title" {
		t.Errorf("title = %q, want New Title", info.Title)
	}
}

func TestSync_RemovesStaleNotes(t *testing.T) {
	s := testStore(t)
	dir, store := testVault(t)
	writeFile(t, dir, "gone.md", "# Gone")

	if err := Sync(s, store, discardLogger()); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "gone.md")); err != nil {
		t.Fatal(err)
	}
	if err := Sync(s, store, discardLogger()); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	info, err := s.NoteInfo("gone.md")
	if err != nil {
		t.Fatalf("NoteInfo: %v", err)
	}
	if info != nil {
		t.Errorf("stale note still indexed: %+v", info)
	}
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
