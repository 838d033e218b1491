// Package testutil provides shared test helpers for setting up vaults and stores.
package testutil

import (
	"os"
	"testing"

	"github.com/conelabs/conedit/internal/index"
	"github.com/conelabs/conedit/internal/storage"
)

// TestStore creates a temporary SQLite index store that is automatically cleaned up.
func TestStore(t *testing.T) *index.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "conedit-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}
