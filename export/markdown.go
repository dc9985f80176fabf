package export

import (
	"fmt"
	"strings"

	"github.com/tansell/onemark/model"
)

// Markdown renders pages as Markdown documents. Image and attachment
// elements become relative links into the images/ and attachments/
// directories the Writer populates alongside the page files.
type Markdown struct{}

// Extension returns ".md".
func (Markdown) Extension() string { return ".md" }

// RenderPage renders a page to Markdown text. Ordered list numbering is
// tracked per indent level and resets whenever the list is interrupted by
// a non-list element.
func (m Markdown) RenderPage(page *model.Page) string {
	var lines []string

	if page.Title != "" {
		lines = append(lines, "# "+page.Title, "")
	}

	counters := newListCounters()

	for _, elem := range page.Elements {
		var rendered string
		if rt, ok := elem.(*model.RichText); ok && rt.ListType == model.ListOrdered {
			rendered = m.renderRichText(rt, counters.next(rt.IndentLevel))
		} else {
			if rt, ok := elem.(*model.RichText); !ok || rt.ListType == model.ListNone {
				counters.reset()
			}
			rendered = m.renderElement(elem)
		}
		if rendered != "" {
			lines = append(lines, rendered, "")
		}
	}

	if page.Author != "" {
		lines = append(lines, "---", fmt.Sprintf("*Author: %s*", page.Author), "")
	}

	return strings.Join(lines, "\n")
}

func (m Markdown) renderElement(elem model.Element) string {
	switch e := elem.(type) {
	case *model.RichText:
		return m.renderRichText(e, 0)
	case *model.Image:
		return m.renderImage(e)
	case *model.Table:
		return m.renderTable(e)
	case *model.EmbeddedFile:
		return m.renderEmbeddedFile(e)
	default:
		return ""
	}
}

func (m Markdown) renderRichText(rt *model.RichText, orderedNumber int) string {
	var parts []string

	for _, run := range rt.Runs {
		text := run.Text
		if text == "" {
			continue
		}

		if rt.HeadingLevel == 0 {
			if run.Strikethrough {
				text = "~~" + text + "~~"
			}
			switch {
			case run.Bold && run.Italic:
				text = "***" + text + "***"
			case run.Bold:
				text = "**" + text + "**"
			case run.Italic:
				text = "*" + text + "*"
			}
			// Markdown has no underline; render as emphasis unless the
			// run is already a link.
			if run.Underline && run.HyperlinkURL == "" {
				text = "*" + text + "*"
			}
		}

		if run.HyperlinkURL != "" {
			text = fmt.Sprintf("[%s](%s)", run.Text, run.HyperlinkURL)
		}

		if rt.HeadingLevel == 0 {
			if run.Superscript {
				text = "<sup>" + text + "</sup>"
			}
			if run.Subscript {
				text = "<sub>" + text + "</sub>"
			}
		}

		parts = append(parts, text)
	}

	result := strings.Join(parts, "")

	switch {
	case rt.HeadingLevel > 0:
		result = strings.Repeat("#", rt.HeadingLevel) + " " + result
	case rt.ListType != model.ListNone:
		indent := strings.Repeat("   ", rt.IndentLevel)
		marker := "-"
		if rt.ListType == model.ListOrdered {
			n := orderedNumber
			if n < 1 {
				n = 1
			}
			marker = fmt.Sprintf("%d.", n)
		}
		result = indent + marker + " " + result
	case rt.IndentLevel > 0:
		// Indented text without an explicit list type still reads as a
		// bullet in the source application.
		result = strings.Repeat("   ", rt.IndentLevel) + "- " + result
	}

	return result
}

func (m Markdown) renderImage(img *model.Image) string {
	alt := img.AltText
	if alt == "" {
		alt = img.Filename
	}
	if alt == "" {
		alt = "image"
	}
	if len(img.Data) > 0 {
		return fmt.Sprintf("![%s](./images/%s)", alt, SanitizeFilename(imageFilename(img)))
	}
	return fmt.Sprintf("![%s](%s)", alt, img.Filename)
}

func (m Markdown) renderTable(table *model.Table) string {
	if len(table.Rows) == 0 {
		return ""
	}

	var lines []string
	for i, row := range table.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			var cellParts []string
			for _, e := range cell {
				if rendered := strings.TrimSpace(m.renderElement(e)); rendered != "" {
					cellParts = append(cellParts, rendered)
				}
			}
			text := strings.Join(cellParts, " ")
			if text == "" {
				text = " "
			}
			cells = append(cells, text)
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")

		if i == 0 {
			seps := make([]string, len(cells))
			for j := range seps {
				seps[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
		}
	}

	return strings.Join(lines, "\n")
}

func (m Markdown) renderEmbeddedFile(ef *model.EmbeddedFile) string {
	name := ef.Filename
	if name == "" {
		name = "attachment"
	}
	if len(ef.Data) > 0 {
		return fmt.Sprintf("[%s](./attachments/%s)", name, SanitizeFilename(name))
	}
	return "[" + name + "]"
}

// listCounters tracks ordered list numbering per indent level. Entering a
// shallower level discards the counters of everything deeper.
type listCounters struct {
	byLevel map[int]int
}

func newListCounters() *listCounters {
	return &listCounters{byLevel: map[int]int{}}
}

// next advances and returns the counter for a level.
func (c *listCounters) next(level int) int {
	for k := range c.byLevel {
		if k > level {
			delete(c.byLevel, k)
		}
	}
	c.byLevel[level]++
	return c.byLevel[level]
}

func (c *listCounters) reset() {
	for k := range c.byLevel {
		delete(c.byLevel, k)
	}
}

// imageFilename resolves the output filename for an image element.
func imageFilename(img *model.Image) string {
	if img.Filename != "" {
		return img.Filename
	}
	ext := img.Format
	if ext == "" {
		ext = "bin"
	}
	return "image." + ext
}
