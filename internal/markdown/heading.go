package markdown

import (
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// Heading is one Markdown heading. Offset is the byte offset of the start of
// the heading's line within the full text, not of the first '#'.
type Heading struct {
	Text   string
	Level  int
	Offset int
}

// ParseHeadings scans text line by line and returns headings in document
// order. Non-heading lines are skipped.
func ParseHeadings(text string) []Heading {
	var out []Heading
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if m := headingRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			out = append(out, Heading{
				Text:   strings.TrimSpace(m[2]),
				Level:  len(m[1]),
				Offset: offset,
			})
		}
		offset += len(line) + 1 // +1 for the newline
	}
	return out
}
