package extract

import (
	"fmt"

	"github.com/tansell/onemark/format"
	"github.com/tansell/onemark/model"
	"github.com/tansell/onemark/onestore"
	"github.com/tansell/onemark/property"
)

// BuildElements walks a page's object stream in order and materializes
// content elements. Formatting context flows forward through the walk:
// a style container sets the character formatting for the rich text that
// follows it, and list markers arm an indent that the next rich text
// consumes.
func BuildElements(objects []onestore.Object, blobs onestore.BlobTable) []model.Element {
	var elements []model.Element

	topLevel := topLevelOutlineIDs(objects)

	style := map[property.Key]any{}
	hasList := false

	for _, obj := range objects {
		switch obj.Kind {
		case onestore.TagStyleContainer:
			// Formatting for subsequent text. Replace, don't merge:
			// each container is a complete character style.
			style = obj.Properties

		case onestore.TagNumberList:
			hasList = true

		case onestore.TagOutlineElement:
			// The content itself arrives in the next rich text node.
			hasList = obj.Prop(property.ListNodes) != nil
			if !hasList && len(topLevel) > 0 && !topLevel[obj.Identity] {
				// Nested outline elements are list children even
				// without an explicit list marker.
				hasList = true
			}

		case onestore.TagRichText:
			if rt := buildRichText(obj, style, hasList); rt != nil {
				elements = append(elements, rt)
			}
			hasList = false

		case onestore.TagImageNode:
			if img := buildImage(obj, blobs); img != nil {
				elements = append(elements, img)
			}

		case onestore.TagTableNode:
			if tbl := buildTable(obj); tbl != nil {
				elements = append(elements, tbl)
			}

		case onestore.TagEmbeddedFile:
			if ef := buildEmbeddedFile(obj); ef != nil {
				elements = append(elements, ef)
			}
		}
	}

	return elements
}

// topLevelOutlineIDs collects the identities of outline elements that sit
// directly under an outline node. Outline elements missing from this set
// are nested children.
func topLevelOutlineIDs(objects []onestore.Object) map[string]bool {
	ids := map[string]bool{}
	for _, obj := range objects {
		if obj.Kind != onestore.TagOutlineNode {
			continue
		}
		for _, key := range []property.Key{property.VersionHistoryChildNodes, property.ElementChildNodes} {
			v := property.Decode(key, obj.Prop(key))
			for _, ref := range v.Refs() {
				ids[ref] = true
			}
			if ref := v.Ref(); ref != "" {
				ids[ref] = true
			}
		}
	}
	return ids
}

// buildRichText materializes a text element, or nil when the object holds
// no visible text. Character formatting comes from the carried style
// context; the hyperlink and title flags ride on the object itself.
func buildRichText(obj onestore.Object, style map[property.Key]any, isListItem bool) *model.RichText {
	text := ""
	if raw := obj.Prop(property.RichEditTextUnicode); raw != nil {
		text = property.DecodeText(raw, property.Unicode)
	}
	if text == "" {
		if raw := obj.Prop(property.TextExtendedAscii); raw != nil {
			text = property.DecodeText(raw, property.ASCII)
		}
	}
	if text == "" {
		return nil
	}

	run := model.TextRun{
		Text:          text,
		Bold:          property.AsBool(style[property.Bold]),
		Italic:        property.AsBool(style[property.Italic]),
		Underline:     property.AsBool(style[property.Underline]),
		Strikethrough: property.AsBool(style[property.Strikethrough]),
		Superscript:   property.AsBool(style[property.Superscript]),
		Subscript:     property.AsBool(style[property.Subscript]),
		Font:          property.DecodeText(style[property.Font], property.Unicode),
		FontSize:      property.Decode(property.FontSize, style[property.FontSize]).Int(),
		HyperlinkURL:  property.DecodeText(obj.Prop(property.WzHyperlinkUrl), property.Unicode),
	}

	indent := 0
	if isListItem {
		indent = 1
	}

	return &model.RichText{
		Runs:        []model.TextRun{run},
		IndentLevel: indent,
		IsTitle:     property.AsBool(obj.Prop(property.IsTitleText)),
	}
}

// buildImage materializes a picture element, or nil when neither data nor
// a filename can be recovered. When the picture container arrives as a
// reference rather than inline bytes, the blob table is scanned in order
// and the first blob carrying recognizable image data wins: blob
// identifiers do not reliably correlate with object identities.
func buildImage(obj onestore.Object, blobs onestore.BlobTable) *model.Image {
	filename := property.DecodeText(obj.Prop(property.ImageFilename), property.Unicode)
	alt := property.DecodeText(obj.Prop(property.ImageAltText), property.Unicode)
	width := property.Decode(property.PictureWidth, obj.Prop(property.PictureWidth)).Int()
	height := property.Decode(property.PictureHeight, obj.Prop(property.PictureHeight)).Int()

	var data []byte
	container := obj.Prop(property.PictureContainer)
	if b, ok := container.([]byte); ok {
		data = b
	} else if container != nil && len(blobs) > 0 {
		for _, blob := range blobs {
			if format.DetectImage(blob.Data) != format.ImageUnknown {
				data = blob.Data
				break
			}
		}
	}

	if len(data) == 0 && filename == "" {
		return nil
	}

	var fmtName string
	if len(data) > 0 {
		fmtName = format.DetectImage(data).String()
		if width == 0 && height == 0 {
			if w, h, ok := format.Dimensions(data); ok {
				width, height = w, h
			}
		}
	}

	if filename == "" {
		ext := fmtName
		if ext == "" {
			ext = "bin"
		}
		filename = fmt.Sprintf("image.%s", ext)
	}

	return &model.Image{
		Data:     data,
		Filename: filename,
		AltText:  alt,
		Width:    width,
		Height:   height,
		Format:   fmtName,
	}
}

// buildTable materializes a table element, or nil when the declared
// dimensions are degenerate. Cell content linking across the object graph
// is not reconstructed; the grid is materialized empty at its declared
// size so renderers can still represent the structure.
func buildTable(obj onestore.Object) *model.Table {
	rows := property.Decode(property.RowCount, obj.Prop(property.RowCount)).Int()
	cols := property.Decode(property.ColumnCount, obj.Prop(property.ColumnCount)).Int()
	if rows <= 0 || cols <= 0 {
		return nil
	}

	borders := true
	if raw := obj.Prop(property.TableBordersVisible); raw != nil {
		borders = property.AsBool(raw)
	}

	grid := make([][]model.Cell, rows)
	for i := range grid {
		grid[i] = make([]model.Cell, cols)
	}

	return &model.Table{
		Rows:           grid,
		BordersVisible: borders,
	}
}

// buildEmbeddedFile materializes an attachment element, or nil when
// neither a filename nor payload data is present.
func buildEmbeddedFile(obj onestore.Object) *model.EmbeddedFile {
	filename := property.DecodeText(obj.Prop(property.EmbeddedFileName), property.Unicode)
	source := property.DecodeText(obj.Prop(property.SourceFilepath), property.Unicode)

	var data []byte
	if b, ok := obj.Prop(property.EmbeddedFileContainer).([]byte); ok {
		data = b
	}

	if filename == "" && len(data) == 0 {
		return nil
	}

	return &model.EmbeddedFile{
		Data:       data,
		Filename:   filename,
		SourcePath: source,
	}
}
