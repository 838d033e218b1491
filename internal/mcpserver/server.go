// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the note index to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/conelabs/conedit/internal/noteservice"
)

// Server wraps the MCP server with conedit tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all conedit tools registered.
func New(svc *noteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"conedit",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Lexical search through indexed note chunks."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("note_info",
		mcp.WithDescription("Get indexed structure for a note: title, word count, headings and backlinks."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note")),
	), s.noteInfo)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List indexed notes in stable path order."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("Find all notes that link to the specified note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the note to find backlinks for")),
	), s.getBacklinks)

	s.mcp.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a bounded node/edge view of the link graph."),
		mcp.WithNumber("limit", mcp.Description("Max nodes to return (default 100)")),
		mcp.WithNumber("min_degree", mcp.Description("Drop nodes below this degree")),
	), s.getGraph)

	s.mcp.AddTool(mcp.NewTool("reindex_vault",
		mcp.WithDescription("Rebuild the index from the files currently in the vault."),
	), s.reindexVault)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.GetNote(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(note.Content), nil
}

func (s *Server) noteInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.svc.NoteInfo(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if info == nil {
		return mcp.NewToolResultError(fmt.Sprintf("not indexed: %s", path)), nil
	}
	out, _ := json.MarshalIndent(info, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, _, err := s.svc.ListNotes(ctx, 0, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var paths []string
	for _, n := range notes {
		paths = append(paths, n.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bl, err := s.svc.Backlinks(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(bl) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	var lines []string
	for _, b := range bl {
		lines = append(lines, fmt.Sprintf("%s (%q, %d occurrences)", b.SrcNote, b.LinkText, b.Occurrences))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 100)
	minDegree := req.GetInt("min_degree", 0)

	graph, err := s.svc.Graph(ctx, limit, minDegree)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(graph, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) reindexVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.svc.Reindex(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("reindex complete"), nil
}
