package api

import (
	"github.com/conelabs/conedit/internal/index"
	"github.com/conelabs/conedit/internal/models"
	"github.com/conelabs/conedit/internal/noteservice"
)

// IndexNoteRequest is the request body for pushing note content into the index.
type IndexNoteRequest struct {
	Path       string `json:"path" example:"notes/hello.md" validate:"required"`
	Content    string `json:"content" example:"# Hello\nWorld" validate:"required"`
	ModifiedAt string `json:"modified_at" example:"2025-01-02T15:04:05Z"`
}

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Content string `json:"content" example:"# Hello\nWorld" validate:"required"`
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content string `json:"content" example:"# Updated\nContent" validate:"required"`
}

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = noteservice.NoteDetail

// IndexNoteResult reports what an index pass produced (aliased from the index layer).
type IndexNoteResult = index.IndexResult

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []models.Note `json:"notes" validate:"required"`
	Total int           `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results" validate:"required"`
}

// BacklinksResponse wraps backlinks for a single note.
type BacklinksResponse struct {
	Path      string            `json:"path" example:"notes/hello.md" validate:"required"`
	Backlinks []models.Backlink `json:"backlinks" validate:"required"`
}

// GraphResponse is the knowledge graph payload (aliased from the index layer).
type GraphResponse = index.GraphData
