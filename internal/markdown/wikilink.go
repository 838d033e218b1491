// Package markdown extracts structure (headings), relations (wikilinks), and
// bounded text chunks from raw note content. All functions are pure and never
// return an error: malformed input degrades to fewer records.
package markdown

import (
	"regexp"
	"strings"
)

// SegmentKind tags a Segment as plain text or a wikilink occurrence.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentWikilink
)

// Segment is one piece of a note body. The body decomposes into a flat
// stream of segments; there is no nesting.
type Segment struct {
	Kind SegmentKind
	Text string    // the raw slice of the source text
	Link *Wikilink // set when Kind == SegmentWikilink
}

// Wikilink is a single [[Target]] or [[Target|Alias]] occurrence.
// Start and End are byte offsets of the full match within the source text.
type Wikilink struct {
	Raw    string
	Target string
	Alias  string
	Start  int
	End    int
}

// The target may not contain ']' or '|', which is what lets a well-formed
// link be recognised after stray unmatched '[' or '[[' sequences.
var wikilinkRe = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)

// Segments splits text into tagged text/wikilink segments in document order.
// A bracket pair whose target trims to empty is not a link and is folded
// into the surrounding text.
func Segments(text string) []Segment {
	if text == "" {
		return nil
	}
	var out []Segment
	last := 0
	for _, m := range wikilinkRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		target := strings.TrimSpace(text[m[2]:m[3]])
		if target == "" {
			continue
		}
		var alias string
		if m[4] >= 0 {
			alias = strings.TrimSpace(text[m[4]:m[5]])
		}
		if start > last {
			out = append(out, Segment{Kind: SegmentText, Text: text[last:start]})
		}
		raw := text[start:end]
		out = append(out, Segment{
			Kind: SegmentWikilink,
			Text: raw,
			Link: &Wikilink{Raw: raw, Target: target, Alias: alias, Start: start, End: end},
		})
		last = end
	}
	if last < len(text) {
		out = append(out, Segment{Kind: SegmentText, Text: text[last:]})
	}
	return out
}

// ParseWikilinks returns every well-formed wikilink in document order.
func ParseWikilinks(text string) []Wikilink {
	var out []Wikilink
	for _, s := range Segments(text) {
		if s.Kind == SegmentWikilink {
			out = append(out, *s.Link)
		}
	}
	return out
}

// ExtractWikilinks returns the distinct link targets in first-seen order.
func ExtractWikilinks(text string) []string {
	links := ParseWikilinks(text)
	seen := make(map[string]struct{}, len(links))
	var out []string
	for _, l := range links {
		if _, dup := seen[l.Target]; dup {
			continue
		}
		seen[l.Target] = struct{}{}
		out = append(out, l.Target)
	}
	return out
}
