package index

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/conelabs/conedit/internal/markdown"
	"github.com/conelabs/conedit/internal/models"
)

// IndexResult summarises one committed reindex of a note.
type IndexResult struct {
	NoteID        string         `json:"note_id"`
	IndexedChunks int            `json:"indexed_chunks"`
	Chunks        []models.Chunk `json:"chunks"`
	HeadingsCount int            `json:"headings_count"`
	LinksCount    int            `json:"links_count"`
}

// UpsertNote indexes one note's content as a single transaction: the note
// row is inserted or updated (created_at preserved), every heading, link,
// and chunk row owned by the note is replaced, and the whole set commits or
// rolls back together. Reindexing unchanged content yields identical rows.
//
// The note id is the vault-relative path, so a path is indexed once and
// updated on every subsequent call.
func (s *Store) UpsertNote(path, content string, modifiedAt time.Time) (*IndexResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	noteID := path
	title := markdown.DeriveTitle(content, path)
	words := markdown.WordCount(content)

	_, err = tx.Exec(`
		INSERT INTO notes (note_id, path, title, created_at, modified_at, word_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(note_id) DO UPDATE SET
			title       = excluded.title,
			modified_at = excluded.modified_at,
			word_count  = excluded.word_count
	`, noteID, path, title, time.Now().UTC(), modifiedAt.UTC(), words)
	if err != nil {
		return nil, fmt.Errorf("index: upsert note: %w", err)
	}

	// Derived rows are owned exclusively by the note and fully replaced.
	for _, q := range []string{
		`DELETE FROM headings WHERE note_id = ?`,
		`DELETE FROM links WHERE src_note = ?`,
		`DELETE FROM chunks WHERE note_id = ?`,
	} {
		if _, err := tx.Exec(q, noteID); err != nil {
			return nil, fmt.Errorf("index: clear derived rows: %w", err)
		}
	}
	ftsDelete(tx, noteID)

	headings := markdown.ParseHeadings(content)
	for _, h := range headings {
		_, err := tx.Exec(`INSERT INTO headings (note_id, heading, level, start_offset) VALUES (?, ?, ?, ?)`,
			noteID, h.Text, h.Level, h.Offset)
		if err != nil {
			return nil, fmt.Errorf("index: insert heading: %w", err)
		}
	}

	links := aggregateLinks(markdown.ParseWikilinks(content))
	for _, l := range links {
		var resolved any
		if id, ok := resolveTarget(tx, l.rawTarget); ok {
			resolved = id
		}
		_, err := tx.Exec(`
			INSERT INTO links (src_note, raw_target, resolved, link_text, occurrences)
			VALUES (?, ?, ?, ?, ?)
		`, noteID, l.rawTarget, resolved, l.linkText, l.occurrences)
		if err != nil {
			return nil, fmt.Errorf("index: insert link: %w", err)
		}
	}

	chunks := markdown.ChunkText(content, 0)
	out := make([]models.Chunk, 0, len(chunks))
	for _, c := range chunks {
		id := chunkID(noteID, c.Start)
		_, err := tx.Exec(`INSERT INTO chunks (chunk_id, note_id, start_offset, end_offset, text) VALUES (?, ?, ?, ?, ?)`,
			id, noteID, c.Start, c.End, c.Text)
		if err != nil {
			return nil, fmt.Errorf("index: insert chunk: %w", err)
		}
		if err := ftsInsertChunk(tx, id, noteID, c.Text); err != nil {
			return nil, err
		}
		out = append(out, models.Chunk{ChunkID: id, NoteID: noteID, StartOffset: c.Start, EndOffset: c.End, Text: c.Text})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("index: commit: %w", err)
	}
	return &IndexResult{
		NoteID:        noteID,
		IndexedChunks: len(out),
		Chunks:        out,
		HeadingsCount: len(headings),
		LinksCount:    len(links),
	}, nil
}

// DeleteNote removes a note and all rows it owns in one transaction.
func (s *Store) DeleteNote(noteID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, noteID)
	for _, q := range []string{
		`DELETE FROM headings WHERE note_id = ?`,
		`DELETE FROM links WHERE src_note = ?`,
		`DELETE FROM chunks WHERE note_id = ?`,
		`DELETE FROM notes WHERE note_id = ?`,
	} {
		if _, err := tx.Exec(q, noteID); err != nil {
			return fmt.Errorf("index: delete note: %w", err)
		}
	}
	return tx.Commit()
}

// Notes returns a stable page of notes in note_id order plus the total count.
func (s *Store) Notes(limit, offset int) ([]models.Note, int, error) {
	if err := s.ready(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var total int
	if err := s.conn.QueryRow(`SELECT count(*) FROM notes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count notes: %w", err)
	}
	rows, err := s.conn.Query(`
		SELECT note_id, path, title, created_at, modified_at, word_count
		FROM notes ORDER BY note_id LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.NoteID, &n.Path, &n.Title, &n.CreatedAt, &n.ModifiedAt, &n.WordCount); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

// AllModified returns modified_at for every indexed note, keyed by note id.
// Vault sync uses it to skip files whose timestamp has not moved.
func (s *Store) AllModified() (map[string]time.Time, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(`SELECT note_id, modified_at FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all modified: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var mod time.Time
		if err := rows.Scan(&id, &mod); err != nil {
			return nil, err
		}
		out[id] = mod
	}
	return out, rows.Err()
}

// linkAgg is one distinct raw target with its aggregated occurrence count.
// linkText keeps the last-seen alias (or target text when unaliased).
type linkAgg struct {
	rawTarget   string
	linkText    string
	occurrences int
}

func aggregateLinks(links []markdown.Wikilink) []linkAgg {
	byTarget := make(map[string]int, len(links))
	var out []linkAgg
	for _, l := range links {
		text := l.Target
		if l.Alias != "" {
			text = l.Alias
		}
		if i, ok := byTarget[l.Target]; ok {
			out[i].occurrences++
			out[i].linkText = text
			continue
		}
		byTarget[l.Target] = len(out)
		out = append(out, linkAgg{rawTarget: l.Target, linkText: text, occurrences: 1})
	}
	return out
}

// chunkID derives a deterministic id from (note id, start offset) so that
// re-chunking identical content is idempotent.
func chunkID(noteID string, start int) string {
	h := sha1.Sum([]byte(fmt.Sprintf("%s:%d", noteID, start)))
	return hex.EncodeToString(h[:])[:16]
}
