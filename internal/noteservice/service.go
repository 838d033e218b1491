// Package noteservice coordinates vault storage and the index. It is the
// caller layer the engine expects: it owns all file I/O and serializes
// mutations per note path, so a manual save and an externally triggered
// reindex of the same file cannot race each other. Different paths may
// index concurrently; the store's WAL handles interleaving.
package noteservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/conelabs/conedit/internal/apperr"
	"github.com/conelabs/conedit/internal/index"
	"github.com/conelabs/conedit/internal/models"
	"github.com/conelabs/conedit/internal/storage"
)

// Notify is called after every committed index mutation.
// kind is one of "indexed" or "deleted".
type Notify func(kind, path string)

// NoteDetail is the full representation of a note returned to the UI.
type NoteDetail struct {
	Path       string            `json:"path"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Checksum   string            `json:"checksum"`
	WordCount  int               `json:"word_count"`
	Headings   []models.Heading  `json:"headings"`
	Backlinks  []models.Backlink `json:"backlinks"`
	CreatedAt  time.Time         `json:"created_at"`
	ModifiedAt time.Time         `json:"modified_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store  storage.Provider
	db     *index.Store
	logger *slog.Logger
	notify Notify
	locks  sync.Map // note path -> *sync.Mutex
}

// NewService creates a note service. notify may be nil.
func NewService(store storage.Provider, db *index.Store, logger *slog.Logger, notify Notify) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, db: db, logger: logger, notify: notify}
}

// lockPath serializes mutations for a single note path. The returned
// function releases the lock.
func (s *Service) lockPath(path string) func() {
	v, _ := s.locks.LoadOrStore(path, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) published(kind, path string) {
	if s.notify != nil {
		s.notify(kind, path)
	}
}

// IndexNote indexes content handed in by the caller without touching the
// file system. This is the synchronous engine entry point for collaborators
// that already hold the content (editor save, external change notification).
func (s *Service) IndexNote(_ context.Context, path, content string, modifiedAt time.Time) (*index.IndexResult, error) {
	unlock := s.lockPath(path)
	defer unlock()

	res, err := s.db.UpsertNote(path, content, modifiedAt)
	if err != nil {
		return nil, err
	}
	s.published("indexed", path)
	return res, nil
}

// GetNote reads a note from the vault and enriches it with indexed
// structure. A file present on disk but missing from the index is indexed
// on first read.
func (s *Service) GetNote(ctx context.Context, path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	info, err := s.db.NoteInfo(path)
	if err != nil {
		return nil, err
	}
	if info == nil {
		mod, modErr := s.store.ModTime(path)
		if modErr != nil {
			mod = time.Now()
		}
		if _, err := s.IndexNote(ctx, path, string(data), mod); err != nil {
			return nil, err
		}
		if info, err = s.db.NoteInfo(path); err != nil {
			return nil, err
		}
	}

	return &NoteDetail{
		Path:       info.Path,
		Title:      info.Title,
		Content:    string(data),
		Checksum:   sha256sum(data),
		WordCount:  info.WordCount,
		Headings:   info.Headings,
		Backlinks:  info.Backlinks,
		CreatedAt:  info.CreatedAt,
		ModifiedAt: info.ModifiedAt,
	}, nil
}

// CreateNote writes a new note and indexes it.
func (s *Service) CreateNote(ctx context.Context, path string, content []byte) (*NoteDetail, error) {
	unlock := s.lockPath(path)

	if _, err := s.store.Read(path); err == nil {
		unlock()
		return nil, apperr.ErrAlreadyExists
	}
	err := s.writeAndIndex(path, content)
	unlock()
	if err != nil {
		return nil, err
	}
	return s.GetNote(ctx, path)
}

// UpdateNote writes updated content with optimistic concurrency: when
// ifMatch is non-empty it must equal the SHA-256 checksum of the current
// file content.
func (s *Service) UpdateNote(ctx context.Context, path string, content []byte, ifMatch string) (*NoteDetail, error) {
	unlock := s.lockPath(path)

	existing, err := s.store.Read(path)
	if err != nil {
		unlock()
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != sha256sum(existing) {
		unlock()
		return nil, apperr.ErrConflict
	}
	err = s.writeAndIndex(path, content)
	unlock()
	if err != nil {
		return nil, err
	}
	return s.GetNote(ctx, path)
}

// writeAndIndex persists the file, then commits the index transaction.
// Callers must hold the path lock.
func (s *Service) writeAndIndex(path string, content []byte) error {
	if err := s.store.Write(path, content); err != nil {
		return err
	}
	mod, err := s.store.ModTime(path)
	if err != nil {
		mod = time.Now()
	}
	if _, err := s.db.UpsertNote(path, string(content), mod); err != nil {
		return err
	}
	s.published("indexed", path)
	return nil
}

// DeleteNote removes a note from the vault and cascades through the index.
func (s *Service) DeleteNote(_ context.Context, path string) error {
	unlock := s.lockPath(path)
	defer unlock()

	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.DeleteNote(path); err != nil {
		return err
	}
	s.published("deleted", path)
	return nil
}

// NoteInfo returns indexed structure without reading the file.
func (s *Service) NoteInfo(_ context.Context, noteID string) (*index.NoteInfo, error) {
	return s.db.NoteInfo(noteID)
}

// ListNotes returns a stable page of indexed notes.
func (s *Service) ListNotes(_ context.Context, limit, offset int) ([]models.Note, int, error) {
	return s.db.Notes(limit, offset)
}

// Backlinks delegates to the index.
func (s *Service) Backlinks(_ context.Context, noteID string) ([]models.Backlink, error) {
	return s.db.Backlinks(noteID)
}

// Graph delegates to the index.
func (s *Service) Graph(_ context.Context, limit, minDegree int) (*index.GraphData, error) {
	return s.db.Graph(limit, minDegree)
}

// Search delegates to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Reindex rebuilds the whole vault as a sequence of independent per-note
// transactions, so a failure partway through keeps prior progress.
func (s *Service) Reindex(_ context.Context) error {
	return index.Sync(s.db, s.store, s.logger)
}

func sha256sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
