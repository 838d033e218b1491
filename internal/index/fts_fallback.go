//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not compiled in; search falls back to LIKE over the chunks table.
	return nil
}

func ftsInsertChunk(_ *sql.Tx, _, _, _ string) error { return nil }

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based lexical search over chunk text and note
// titles (fallback when FTS5 is not compiled in). One hit per note.
func (s *Store) Search(query string, limit int) ([]SearchResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	// The bare c.text column rides along with min(c.start_offset), so the
	// snippet comes from the earliest matching chunk of each note.
	rows, err := s.conn.Query(`
		SELECT c.note_id, COALESCE(n.title, ''), substr(c.text, 1, 200), min(c.start_offset)
		FROM chunks c
		LEFT JOIN notes n ON n.note_id = c.note_id
		WHERE c.text LIKE ? OR n.title LIKE ?
		GROUP BY c.note_id
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var start int
		if err := rows.Scan(&r.NoteID, &r.Title, &r.Snippet, &start); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
