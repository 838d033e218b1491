// Package index provides the SQLite-backed note indexing and link-graph
// engine. One Store exists per vault; it owns the per-note reindex
// transaction and all backlink, graph, and search queries.
package index

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/conelabs/conedit/internal/apperr"
)

// DBFileName is the store file kept inside each vault directory.
const DBFileName = ".conedit.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	note_id     TEXT PRIMARY KEY,
	path        TEXT UNIQUE NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL,
	modified_at DATETIME NOT NULL,
	word_count  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS headings (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	note_id      TEXT NOT NULL REFERENCES notes(note_id) ON DELETE CASCADE,
	heading      TEXT NOT NULL,
	level        INTEGER NOT NULL,
	start_offset INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS links (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	src_note    TEXT NOT NULL REFERENCES notes(note_id) ON DELETE CASCADE,
	raw_target  TEXT NOT NULL,
	resolved    TEXT,
	link_text   TEXT NOT NULL DEFAULT '',
	occurrences INTEGER NOT NULL DEFAULT 1,
	UNIQUE(src_note, raw_target)
);

CREATE TABLE IF NOT EXISTS chunks (
	chunk_id     TEXT PRIMARY KEY,
	note_id      TEXT NOT NULL REFERENCES notes(note_id) ON DELETE CASCADE,
	start_offset INTEGER NOT NULL,
	end_offset   INTEGER NOT NULL,
	text         TEXT NOT NULL
);

-- Reserved for a future embedding index; never populated by this engine.
CREATE TABLE IF NOT EXISTS vector_meta (
	chunk_id       TEXT PRIMARY KEY REFERENCES chunks(chunk_id) ON DELETE CASCADE,
	vector_id      TEXT,
	vector_backend TEXT
);

CREATE INDEX IF NOT EXISTS idx_notes_modified ON notes(modified_at);
CREATE INDEX IF NOT EXISTS idx_headings_note ON headings(note_id);
CREATE INDEX IF NOT EXISTS idx_links_src ON links(src_note);
CREATE INDEX IF NOT EXISTS idx_links_resolved ON links(resolved);
CREATE INDEX IF NOT EXISTS idx_chunks_note ON chunks(note_id);
`

// Store wraps the per-vault SQLite database. It is the session object every
// engine call goes through; nothing is read from package-level state.
type Store struct {
	conn *sql.DB
}

// StorePath returns the store file location for a vault directory.
func StorePath(vaultDir string) string {
	return filepath.Join(vaultDir, DBFileName)
}

// Open opens (or creates) the SQLite store and applies the schema.
// WAL journaling gives concurrent readers a consistent committed view while
// a single writer commits.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// ready reports whether the store is usable. Engine calls on a nil or
// closed store fail with apperr.ErrStoreClosed instead of panicking.
func (s *Store) ready() error {
	if s == nil || s.conn == nil {
		return apperr.ErrStoreClosed
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if err := s.ready(); err != nil {
		return err
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
