package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/conelabs/conedit/internal/models"
)

// NoteInfo is a note row enriched with its ordered headings and backlinks.
type NoteInfo struct {
	models.Note
	Headings  []models.Heading  `json:"headings"`
	Backlinks []models.Backlink `json:"backlinks"`
}

// NoteInfo returns the stored note with headings in document order and its
// backlinks. An unknown id returns (nil, nil) rather than an error.
func (s *Store) NoteInfo(noteID string) (*NoteInfo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	info := &NoteInfo{}
	err := s.conn.QueryRow(`
		SELECT note_id, path, title, created_at, modified_at, word_count
		FROM notes WHERE note_id = ?
	`, noteID).Scan(&info.NoteID, &info.Path, &info.Title, &info.CreatedAt, &info.ModifiedAt, &info.WordCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: note info: %w", err)
	}

	rows, err := s.conn.Query(`
		SELECT heading, level, start_offset
		FROM headings WHERE note_id = ? ORDER BY start_offset
	`, noteID)
	if err != nil {
		return nil, fmt.Errorf("index: note headings: %w", err)
	}
	defer rows.Close()

	info.Headings = []models.Heading{}
	for rows.Next() {
		var h models.Heading
		if err := rows.Scan(&h.Heading, &h.Level, &h.StartOffset); err != nil {
			return nil, err
		}
		info.Headings = append(info.Headings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bl, err := s.Backlinks(noteID)
	if err != nil {
		return nil, err
	}
	info.Backlinks = bl
	return info, nil
}
