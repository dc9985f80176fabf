package model

import "strings"

// ElementType represents the type of a page content element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeRichText
	ElementTypeImage
	ElementTypeTable
	ElementTypeEmbeddedFile
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeRichText:
		return "RichText"
	case ElementTypeImage:
		return "Image"
	case ElementTypeTable:
		return "Table"
	case ElementTypeEmbeddedFile:
		return "EmbeddedFile"
	default:
		return "Unknown"
	}
}

// Element is the interface for all page content elements.
type Element interface {
	Type() ElementType
}

// ListType distinguishes the list context a RichText element renders in.
type ListType int

const (
	ListNone ListType = iota
	ListOrdered
	ListUnordered
)

func (lt ListType) String() string {
	switch lt {
	case ListOrdered:
		return "ordered"
	case ListUnordered:
		return "unordered"
	default:
		return "none"
	}
}

// Alignment represents paragraph alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// TextRun is a contiguous span of text sharing one set of character
// formatting attributes.
type TextRun struct {
	Text          string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Superscript   bool
	Subscript     bool
	Font          string
	FontSize      int
	HyperlinkURL  string
}

// RichText is a block of formatted text. A RichText element always carries
// at least one run with non-empty text; empty text never materializes an
// element.
type RichText struct {
	Runs         []TextRun
	HeadingLevel int // 1-6, or 0 for body text
	ListType     ListType
	IndentLevel  int // always >= 0
	Alignment    Alignment
	IsTitle      bool
}

func (r *RichText) Type() ElementType { return ElementTypeRichText }

// Text returns the concatenated text of all runs.
func (r *RichText) Text() string {
	var sb strings.Builder
	for _, run := range r.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Image is an embedded picture.
type Image struct {
	Data     []byte
	Filename string
	AltText  string
	Width    int
	Height   int
	Format   string // "png", "jpeg", "gif", "bmp", "webp" or "" when unknown
}

func (i *Image) Type() ElementType { return ElementTypeImage }

// Cell is one table cell: an ordered sequence of nested elements.
type Cell []Element

// Table is a grid of cells. A table with zero rows or zero columns is
// never materialized.
type Table struct {
	Rows           [][]Cell
	BordersVisible bool
}

func (t *Table) Type() ElementType { return ElementTypeTable }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the number of columns in the first row.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// EmbeddedFile is an attached file.
type EmbeddedFile struct {
	Data       []byte
	Filename   string
	SourcePath string
}

func (e *EmbeddedFile) Type() ElementType { return ElementTypeEmbeddedFile }
