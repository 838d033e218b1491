package index

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conelabs/conedit/internal/models"
)

// Backlinks returns every note linking to noteID, with provenance, ordered
// by source title case-insensitively ascending. Besides resolved matches,
// a link counts when its raw target textually equals the note's current
// title, filename, or filename without extension; that tolerates links
// indexed before the target existed or was renamed. An unknown or
// unreferenced note yields an empty list, never an error.
func (s *Store) Backlinks(noteID string) ([]models.Backlink, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var title, path string
	err := s.conn.QueryRow(`SELECT title, path FROM notes WHERE note_id = ?`, noteID).Scan(&title, &path)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Backlink{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: backlinks lookup: %w", err)
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	rows, err := s.conn.Query(`
		SELECT l.src_note, COALESCE(n.title, ''), COALESCE(n.path, ''), l.link_text, l.occurrences
		FROM links l
		LEFT JOIN notes n ON n.note_id = l.src_note
		WHERE l.resolved = ? OR l.raw_target IN (?, ?, ?)
		ORDER BY n.title COLLATE NOCASE ASC, l.src_note ASC
	`, noteID, title, base, stem)
	if err != nil {
		return nil, fmt.Errorf("index: backlinks: %w", err)
	}
	defer rows.Close()

	out := []models.Backlink{}
	for rows.Next() {
		var b models.Backlink
		if err := rows.Scan(&b.SrcNote, &b.SrcTitle, &b.SrcPath, &b.LinkText, &b.Occurrences); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
