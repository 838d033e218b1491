//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
			chunk_id UNINDEXED,
			note_id UNINDEXED,
			text,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsInsertChunk(tx *sql.Tx, chunkID, noteID, text string) error {
	_, err := tx.Exec(`INSERT INTO chunks_fts (chunk_id, note_id, text) VALUES (?, ?, ?)`,
		chunkID, noteID, text)
	if err != nil {
		return fmt.Errorf("index: insert fts chunk: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, noteID string) {
	_, _ = tx.Exec(`DELETE FROM chunks_fts WHERE note_id = ?`, noteID)
}

// Search performs an FTS5 full-text search over chunk text and returns
// ranked hits with snippets.
func (s *Store) Search(query string, limit int) ([]SearchResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(`
		SELECT f.note_id,
		       COALESCE(n.title, ''),
		       snippet(chunks_fts, 2, '<b>', '</b>', '...', 64)
		FROM chunks_fts f
		LEFT JOIN notes n ON n.note_id = f.note_id
		WHERE chunks_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.NoteID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
