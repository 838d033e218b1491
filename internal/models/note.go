// Package models defines the domain types shared across the indexing engine.
package models

import "time"

// Note is one row in the notes table. NoteID is the vault-relative path and
// is stable across reindexes of the same file.
type Note struct {
	NoteID     string    `json:"note_id"`
	Path       string    `json:"path"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	WordCount  int       `json:"word_count"`
}

// Heading is an ordered heading record owned by a single note.
type Heading struct {
	Heading     string `json:"heading"`
	Level       int    `json:"level"`
	StartOffset int    `json:"start_offset"`
}

// Link is one distinct raw wikilink target found in a source note.
// Resolved is empty when the target is a forward reference to a note
// that does not exist yet; RawTarget keeps the author's text verbatim.
type Link struct {
	SrcNote     string `json:"src_note"`
	RawTarget   string `json:"raw_target"`
	Resolved    string `json:"resolved_target,omitempty"`
	LinkText    string `json:"link_text"`
	Occurrences int    `json:"occurrences"`
}

// Chunk is a contiguous slice of a note body. ChunkID is a deterministic
// function of (note id, start offset) so re-chunking identical content is
// idempotent.
type Chunk struct {
	ChunkID     string `json:"chunk_id"`
	NoteID      string `json:"note_id"`
	StartOffset int    `json:"start"`
	EndOffset   int    `json:"end"`
	Text        string `json:"text"`
}

// Backlink is one incoming link surfaced for a queried note.
type Backlink struct {
	SrcNote     string `json:"src_note"`
	SrcTitle    string `json:"src_title"`
	SrcPath     string `json:"src_path"`
	LinkText    string `json:"link_text"`
	Occurrences int    `json:"occurrences"`
}

// NoteMetadata is a lightweight representation returned by vault listings.
type NoteMetadata struct {
	Path       string    `json:"path"`
	ModifiedAt time.Time `json:"modified_at"`
}
