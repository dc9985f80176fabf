// Package export renders reconstructed sections to output files.
//
// Two renderers are provided, Markdown and HTML. File layout, filename
// collision handling and the writing of image and attachment payloads are
// shared by the Writer, which accepts any Converter.
package export

import (
	"fmt"
	"strings"

	"github.com/tansell/onemark/model"
)

// Converter renders one page to its textual output format.
type Converter interface {
	// Extension returns the output file extension, including the dot.
	Extension() string
	// RenderPage renders a single page to output text.
	RenderPage(page *model.Page) string
}

// maxFilenameLen caps sanitized names well below common filesystem limits,
// leaving room for the extension and collision suffix.
const maxFilenameLen = 200

// SanitizeFilename makes a string safe for use as a filename on the common
// filesystems: reserved characters and control bytes become underscores,
// runs of underscores and whitespace collapse to a single space, and the
// result is length-capped. An empty result becomes "unnamed".
func SanitizeFilename(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r < 0x20, strings.ContainsRune(`<>:"/\|?*`, r):
			sb.WriteRune('_')
		default:
			sb.WriteRune(r)
		}
	}

	sanitized := truncateRunes(collapseFiller(sb.String()), maxFilenameLen)
	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}

// truncateRunes caps s at n characters, never splitting a multi-byte rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// collapseFiller replaces each run of underscores and whitespace with a
// single space and trims the ends.
func collapseFiller(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inRun := false
	for _, r := range s {
		if r == '_' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inRun = true
			continue
		}
		if inRun && sb.Len() > 0 {
			sb.WriteRune(' ')
		}
		inRun = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// pageFilename produces a unique filename for a page title within one
// output directory. Collisions are numbered: "Notes.md", "Notes (2).md".
// The seen map carries state across calls and is keyed case-insensitively.
func pageFilename(title string, seen map[string]int, extension string) string {
	if title == "" {
		title = "Untitled"
	}
	base := SanitizeFilename(title)
	if !strings.HasSuffix(base, extension) {
		base += extension
	}

	key := strings.ToLower(base)
	if n, ok := seen[key]; ok {
		seen[key] = n + 1
		stem := base[:len(base)-len(extension)]
		return fmt.Sprintf("%s (%d)%s", stem, n+1, extension)
	}
	seen[key] = 1
	return base
}
