package index

import (
	"log/slog"

	"github.com/conelabs/conedit/internal/storage"
)

// Sync walks the vault and brings the store up to date:
//   - new files and files whose modification time moved are reindexed
//   - notes whose file no longer exists are deleted
//
// Every note is its own transaction, so a failure partway through keeps the
// progress made on unrelated notes.
func Sync(s *Store, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	indexed, err := s.AllModified()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if prev, ok := indexed[m.Path]; ok && prev.Equal(m.ModifiedAt) {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if _, err := s.UpsertNote(m.Path, string(data), m.ModifiedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for id := range indexed {
		if _, ok := disk[id]; !ok {
			if err := s.DeleteNote(id); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", id), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", id))
			}
		}
	}

	return nil
}
