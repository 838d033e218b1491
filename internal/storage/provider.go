// Package storage defines the vault file-system abstraction. The indexing
// engine never touches files itself; this layer owns all note I/O.
package storage

import (
	"time"

	"github.com/conelabs/conedit/internal/models"
)

// Provider is the interface for vault file operations.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to vault root).
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to vault root).
	Delete(path string) error
	// ModTime returns the last-modified timestamp of the file at path.
	ModTime(path string) (time.Time, error)
}
