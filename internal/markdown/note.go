package markdown

import (
	"path/filepath"
	"strings"
)

// DeriveTitle returns the first level-1 heading in content, falling back to
// the filename without its extension.
func DeriveTitle(content, path string) string {
	for _, h := range ParseHeadings(content) {
		if h.Level == 1 && h.Text != "" {
			return h.Text
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WordCount counts whitespace-delimited tokens in content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
