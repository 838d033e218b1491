package index

import (
	"time"

	"github.com/conelabs/conedit/internal/models"
)

// SearchResult is one lexical search hit.
type SearchResult struct {
	NoteID  string `json:"note_id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// NoteIndex defines the engine's operations. Consumers should depend on
// this interface rather than the concrete *Store to facilitate testing
// with mocks.
type NoteIndex interface {
	UpsertNote(path, content string, modifiedAt time.Time) (*IndexResult, error)
	DeleteNote(noteID string) error
	NoteInfo(noteID string) (*NoteInfo, error)
	Notes(limit, offset int) ([]models.Note, int, error)
	Backlinks(noteID string) ([]models.Backlink, error)
	Graph(limit, minDegree int) (*GraphData, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllModified() (map[string]time.Time, error)
	Close() error
}

// Verify *Store satisfies NoteIndex at compile time.
var _ NoteIndex = (*Store)(nil)
