package markdown

import (
	"strings"
	"testing"
)

// checkPartition asserts chunks are contiguous, non-overlapping, and cover
// [0, len(text)) exactly.
func checkPartition(t *testing.T, text string, chunks []Chunk) {
	t.Helper()
	if len(chunks) == 0 {
		t.Fatal("no chunks returned")
	}
	pos := 0
	total := 0
	for i, c := range chunks {
		if c.Start != pos {
			t.Fatalf("chunks[%d].Start = %d, want %d", i, c.Start, pos)
		}
		if c.End < c.Start {
			t.Fatalf("chunks[%d] has End %d < Start %d", i, c.End, c.Start)
		}
		if c.Text != text[c.Start:c.End] {
			t.Fatalf("chunks[%d].Text does not match its offsets", i)
		}
		total += c.End - c.Start
		pos = c.End
	}
	if pos != len(text) || total != len(text) {
		t.Fatalf("chunks cover %d bytes, want %d", total, len(text))
	}
}

func TestChunkText_Partition(t *testing.T) {
	inputs := []string{
		"short note",
		strings.Repeat("x", 799),
		strings.Repeat("x", 800),
		strings.Repeat("x", 801),
		strings.Repeat("para one\n\n", 300),
		"a\n\n" + strings.Repeat("b", 2000) + "\n\nc",
	}
	for _, text := range inputs {
		checkPartition(t, text, ChunkText(text, 0))
	}
}

func TestChunkText_Empty(t *testing.T) {
	chunks := ChunkText("", 0)
	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].End != 0 || chunks[0].Text != "" {
		t.Errorf("empty input chunk = %+v", chunks[0])
	}
}

func TestChunkText_CutsAtParagraphBreak(t *testing.T) {
	// Break sits past the minimum offset, so the cut lands there instead of
	// at the size limit.
	text := strings.Repeat("a", 500) + "\n\n" + strings.Repeat("b", 600)
	chunks := ChunkText(text, 800)
	checkPartition(t, text, chunks)
	if chunks[0].End != 502 {
		t.Errorf("first cut at %d, want 502 (after paragraph break)", chunks[0].End)
	}
}

func TestChunkText_IgnoresEarlyBreak(t *testing.T) {
	// The only break is before the minimum offset; the cut stays at maxSize.
	text := strings.Repeat("a", 100) + "\n\n" + strings.Repeat("b", 900)
	chunks := ChunkText(text, 800)
	checkPartition(t, text, chunks)
	if chunks[0].End != 800 {
		t.Errorf("first cut at %d, want 800", chunks[0].End)
	}
}

func TestChunkText_Deterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum\n\n", 200)
	a := ChunkText(text, 0)
	b := ChunkText(text, 0)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunks[%d] differ: %+v vs %+v", i, a[i], b[i])
		}
	}
}
