package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/tansell/onemark/model"
)

const pageCSS = `body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto,
                 "Helvetica Neue", Arial, sans-serif;
    max-width: 800px;
    margin: 2rem auto;
    padding: 0 1rem;
    line-height: 1.6;
    color: #222;
}
h1, h2, h3, h4, h5, h6 { margin-top: 1.5em; margin-bottom: 0.5em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 0.5em 0.75em; text-align: left; }
th { background: #f5f5f5; }
img { max-width: 100%; height: auto; }
a { color: #0366d6; }
footer { color: #666; font-size: 0.9em; margin-top: 2em; }
ul, ol { padding-left: 1.5em; }
`

// HTML renders pages as self-contained HTML documents with embedded CSS.
// Image and attachment payloads are not inlined; elements link into the
// images/ and attachments/ directories the Writer populates.
type HTML struct{}

// Extension returns ".html".
func (HTML) Extension() string { return ".html" }

// RenderPage renders a page to a complete HTML document.
func (h HTML) RenderPage(page *model.Page) string {
	var body []string

	if page.Title != "" {
		body = append(body, "<h1>"+html.EscapeString(page.Title)+"</h1>")
	}

	for _, elem := range page.Elements {
		if rendered := h.renderElement(elem); rendered != "" {
			body = append(body, rendered)
		}
	}

	if page.Author != "" {
		body = append(body, "<hr>", "<footer>Author: "+html.EscapeString(page.Author)+"</footer>")
	}

	title := "Untitled"
	if page.Title != "" {
		title = html.EscapeString(page.Title)
	}

	return "<!DOCTYPE html>\n" +
		"<html lang=\"en\">\n" +
		"<head>\n" +
		"<meta charset=\"utf-8\">\n" +
		"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n" +
		"<title>" + title + "</title>\n" +
		"<style>\n" + pageCSS + "</style>\n" +
		"</head>\n" +
		"<body>\n" +
		strings.Join(body, "\n") + "\n" +
		"</body>\n" +
		"</html>\n"
}

func (h HTML) renderElement(elem model.Element) string {
	switch e := elem.(type) {
	case *model.RichText:
		return h.renderRichText(e)
	case *model.Image:
		return h.renderImage(e)
	case *model.Table:
		return h.renderTable(e)
	case *model.EmbeddedFile:
		return h.renderEmbeddedFile(e)
	default:
		return ""
	}
}

// renderRichText renders a text block. Ordered list numbering is implicit
// in the <ol> markup, so no counter is threaded through.
func (h HTML) renderRichText(rt *model.RichText) string {
	var parts []string
	for _, run := range rt.Runs {
		text := run.Text
		if text == "" {
			continue
		}

		text = html.EscapeString(text)

		if run.HyperlinkURL != "" {
			text = fmt.Sprintf("<a href=\"%s\">%s</a>", html.EscapeString(run.HyperlinkURL), text)
		}

		if rt.HeadingLevel == 0 {
			if run.Bold {
				text = "<strong>" + text + "</strong>"
			}
			if run.Italic {
				text = "<em>" + text + "</em>"
			}
			if run.Underline && run.HyperlinkURL == "" {
				text = "<u>" + text + "</u>"
			}
			if run.Strikethrough {
				text = "<del>" + text + "</del>"
			}
			if run.Superscript {
				text = "<sup>" + text + "</sup>"
			}
			if run.Subscript {
				text = "<sub>" + text + "</sub>"
			}
		}

		parts = append(parts, text)
	}

	inline := strings.Join(parts, "")

	if rt.HeadingLevel > 0 {
		level := rt.HeadingLevel
		if level > 6 {
			level = 6
		}
		return fmt.Sprintf("<h%d>%s</h%d>", level, inline, level)
	}

	if rt.ListType != model.ListNone {
		tag := "ul"
		if rt.ListType == model.ListOrdered {
			tag = "ol"
		}
		prefix := "<" + tag + ">" + strings.Repeat("<li><ul>", rt.IndentLevel)
		suffix := strings.Repeat("</ul></li>", rt.IndentLevel) + "</" + tag + ">"
		return prefix + "<li>" + inline + "</li>" + suffix
	}

	if rt.IndentLevel > 0 {
		prefix := strings.Repeat("<ul>", rt.IndentLevel)
		suffix := strings.Repeat("</ul>", rt.IndentLevel)
		return prefix + "<li>" + inline + "</li>" + suffix
	}

	if rt.Alignment != model.AlignLeft {
		return fmt.Sprintf("<p style=\"text-align: %s\">%s</p>", rt.Alignment, inline)
	}
	return "<p>" + inline + "</p>"
}

func (h HTML) renderImage(img *model.Image) string {
	alt := img.AltText
	if alt == "" {
		alt = img.Filename
	}
	if alt == "" {
		alt = "image"
	}
	alt = html.EscapeString(alt)

	if len(img.Data) > 0 {
		src := html.EscapeString(SanitizeFilename(imageFilename(img)))
		return fmt.Sprintf("<img src=\"./images/%s\" alt=\"%s\">", src, alt)
	}
	name := img.Filename
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("<img src=\"%s\" alt=\"%s\">", html.EscapeString(name), alt)
}

func (h HTML) renderTable(table *model.Table) string {
	if len(table.Rows) == 0 {
		return ""
	}

	lines := []string{"<table>"}
	for i, row := range table.Rows {
		lines = append(lines, "<tr>")
		cellTag := "td"
		if i == 0 {
			cellTag = "th"
		}
		for _, cell := range row {
			var cellParts []string
			for _, e := range cell {
				if rendered := h.renderElement(e); rendered != "" {
					cellParts = append(cellParts, rendered)
				}
			}
			lines = append(lines, "<"+cellTag+">"+strings.Join(cellParts, " ")+"</"+cellTag+">")
		}
		lines = append(lines, "</tr>")
	}
	lines = append(lines, "</table>")
	return strings.Join(lines, "\n")
}

func (h HTML) renderEmbeddedFile(ef *model.EmbeddedFile) string {
	name := ef.Filename
	if name == "" {
		name = "attachment"
	}
	escaped := html.EscapeString(name)
	if len(ef.Data) > 0 {
		href := html.EscapeString(SanitizeFilename(name))
		return fmt.Sprintf("<a href=\"./attachments/%s\">%s</a>", href, escaped)
	}
	return "<span>" + escaped + "</span>"
}
