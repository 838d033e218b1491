package markdown

import "strings"

const (
	// DefaultChunkSize bounds a chunk's byte length.
	DefaultChunkSize = 800

	// minBreakOffset is how far into a window a paragraph break must sit
	// before it is preferred over a hard cut at the size limit. Cutting
	// earlier than this would produce pathological tiny chunks.
	minBreakOffset = 200
)

// Chunk is a contiguous window of note text.
type Chunk struct {
	Start int
	End   int
	Text  string
}

// ChunkText splits text into paragraph-aware windows of at most maxSize
// bytes. The result is a partition: chunks are contiguous, non-overlapping,
// and their offsets cover [0, len(text)) exactly, so identical input always
// yields identical chunks. Empty input yields a single empty chunk.
// maxSize <= 0 selects DefaultChunkSize.
func ChunkText(text string, maxSize int) []Chunk {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	if text == "" {
		return []Chunk{{Start: 0, End: 0, Text: ""}}
	}

	var out []Chunk
	pos := 0
	for pos < len(text) {
		end := pos + maxSize
		if end >= len(text) {
			end = len(text)
		} else if brk := strings.LastIndex(text[pos:end], "\n\n"); brk > minBreakOffset {
			// Cut just past the last paragraph break inside the window so
			// the next chunk starts on content.
			end = pos + brk + 2
		}
		out = append(out, Chunk{Start: pos, End: end, Text: text[pos:end]})
		pos = end
	}
	return out
}
