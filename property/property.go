// Package property decodes the packed property identifiers and raw property
// values found in OneNote object property sets.
//
// A property key is a 32-bit value that packs a 6-bit type tag (bits 26-31)
// with a 26-bit property index (bits 0-25). The type tag controls how the
// associated value is interpreted; the index identifies the property itself
// and is used only for name lookup.
package property

// Key is a packed 32-bit OneNote property identifier.
type Key uint32

// Type is the 6-bit value type tag carried in the high bits of a Key.
type Type uint32

// Value type tags defined by the OneNote property-set format.
const (
	NoData                          Type = 0x01
	Bool                            Type = 0x02
	OneByte                         Type = 0x03
	TwoBytes                        Type = 0x04
	FourBytes                       Type = 0x05
	EightBytes                      Type = 0x06
	FourBytesOfLengthFollowedByData Type = 0x07
	ObjectID                        Type = 0x08
	ArrayOfObjectIDs                Type = 0x09
	ObjectSpaceID                   Type = 0x0A
	ArrayOfObjectSpaceIDs           Type = 0x0B
	ContextID                       Type = 0x0C
	ArrayOfContextIDs               Type = 0x0D
	ArrayOfPropertyValues           Type = 0x10
)

// TypeOf extracts the value type tag from a packed key.
func (k Key) TypeOf() Type {
	return Type(uint32(k) >> 26)
}

// Index extracts the 26-bit property index from a packed key.
func (k Key) Index() uint32 {
	return uint32(k) & 0x03FFFFFF
}

// Width returns the byte width of a fixed-size integer type tag, or 0 for
// variable-size and non-numeric tags.
func (t Type) Width() int {
	switch t {
	case OneByte:
		return 1
	case TwoBytes:
		return 2
	case FourBytes:
		return 4
	case EightBytes:
		return 8
	default:
		return 0
	}
}

// Well-known property keys. The constants keep the packed form so the type
// tag and index always round-trip: (TypeOf << 26) | Index == Key.
const (
	LayoutTightLayout         Key = 0x08001C00
	PageWidth                 Key = 0x14001C01
	PageHeight                Key = 0x14001C02
	OutlineElementChildLevel  Key = 0x0C001C03
	Bold                      Key = 0x08001C04
	Italic                    Key = 0x08001C05
	Underline                 Key = 0x08001C06
	Strikethrough             Key = 0x08001C07
	Superscript               Key = 0x08001C08
	Subscript                 Key = 0x08001C09
	Font                      Key = 0x1C001C0A
	FontSize                  Key = 0x10001C0B
	FontColor                 Key = 0x14001C0C
	Highlight                 Key = 0x14001C0D
	RgOutlineIndentDistance   Key = 0x1C001C12
	BodyTextAlignment         Key = 0x0C001C13
	OffsetFromParentHoriz     Key = 0x14001C14
	OffsetFromParentVert      Key = 0x14001C15
	NumberListFormat          Key = 0x1C001C1A
	LayoutMaxWidth            Key = 0x14001C1B
	LayoutMaxHeight           Key = 0x14001C1C
	ContentChildNodes         Key = 0x24001C1F
	ElementChildNodes         Key = 0x24001C20
	RichEditTextUnicode       Key = 0x1C001C22
	ListNodes                 Key = 0x24001C26
	NotebookManagementGUID    Key = 0x1C001C30
	LayoutAlignmentInParent   Key = 0x14001C3E
	PictureContainer          Key = 0x20001C3F
	LayoutAlignmentSelf       Key = 0x14001C84
	PageLevel                 Key = 0x14001C92
	IsTitleText               Key = 0x08001CB1
	IsBoilerText              Key = 0x08001CB2
	TopologyCreationTimeStamp Key = 0x18001C65
	LastModifiedTimeStamp     Key = 0x18001C74
	Author                    Key = 0x1C001D75
	CreationTimeStamp         Key = 0x14001D09
	LastModifiedTime          Key = 0x14001D7A
	CachedTitleString         Key = 0x1C001CF3
	VersionHistoryChildNodes  Key = 0x24001D33
	RowCount                  Key = 0x14001D57
	ColumnCount               Key = 0x14001D58
	TableBordersVisible       Key = 0x08001D5E
	TableColumnWidths         Key = 0x1C001D66
	EmbeddedFileContainer     Key = 0x20001D9B
	EmbeddedFileName          Key = 0x1C001D9C
	SourceFilepath            Key = 0x1C001D9D
	ImageFilename             Key = 0x1C001DD7
	WzHyperlinkUrl            Key = 0x1C001E20
	ImageAltText              Key = 0x1C001E58
	TextExtendedAscii         Key = 0x1C003498
	SectionDisplayName        Key = 0x1C00349B
	PictureWidth              Key = 0x140034CD
	PictureHeight             Key = 0x140034CE
)

// names maps packed keys to their property names. Used for diagnostics and
// by callers that receive name-keyed property bags from other decoders.
var names = map[Key]string{
	LayoutTightLayout:         "LayoutTightLayout",
	PageWidth:                 "PageWidth",
	PageHeight:                "PageHeight",
	OutlineElementChildLevel:  "OutlineElementChildLevel",
	Bold:                      "Bold",
	Italic:                    "Italic",
	Underline:                 "Underline",
	Strikethrough:             "Strikethrough",
	Superscript:               "Superscript",
	Subscript:                 "Subscript",
	Font:                      "Font",
	FontSize:                  "FontSize",
	FontColor:                 "FontColor",
	Highlight:                 "Highlight",
	RgOutlineIndentDistance:   "RgOutlineIndentDistance",
	BodyTextAlignment:         "BodyTextAlignment",
	OffsetFromParentHoriz:     "OffsetFromParentHoriz",
	OffsetFromParentVert:      "OffsetFromParentVert",
	NumberListFormat:          "NumberListFormat",
	LayoutMaxWidth:            "LayoutMaxWidth",
	LayoutMaxHeight:           "LayoutMaxHeight",
	ContentChildNodes:         "ContentChildNodes",
	ElementChildNodes:         "ElementChildNodes",
	RichEditTextUnicode:       "RichEditTextUnicode",
	ListNodes:                 "ListNodes",
	NotebookManagementGUID:    "NotebookManagementEntityGuid",
	LayoutAlignmentInParent:   "LayoutAlignmentInParent",
	PictureContainer:          "PictureContainer",
	LayoutAlignmentSelf:       "LayoutAlignmentSelf",
	PageLevel:                 "PageLevel",
	IsTitleText:               "IsTitleText",
	IsBoilerText:              "IsBoilerText",
	TopologyCreationTimeStamp: "TopologyCreationTimeStamp",
	LastModifiedTimeStamp:     "LastModifiedTimeStamp",
	Author:                    "Author",
	CreationTimeStamp:         "CreationTimeStamp",
	LastModifiedTime:          "LastModifiedTime",
	CachedTitleString:         "CachedTitleString",
	VersionHistoryChildNodes:  "ElementChildNodesOfVersionHistory",
	RowCount:                  "RowCount",
	ColumnCount:               "ColumnCount",
	TableBordersVisible:       "TableBordersVisible",
	TableColumnWidths:         "TableColumnWidths",
	EmbeddedFileContainer:     "EmbeddedFileContainer",
	EmbeddedFileName:          "EmbeddedFileName",
	SourceFilepath:            "SourceFilepath",
	ImageFilename:             "ImageFilename",
	WzHyperlinkUrl:            "WzHyperlinkUrl",
	ImageAltText:              "ImageAltText",
	TextExtendedAscii:         "TextExtendedAscii",
	SectionDisplayName:        "SectionDisplayName",
	PictureWidth:              "PictureWidth",
	PictureHeight:             "PictureHeight",
}

// Name returns the well-known name for a key, or "" if the key is not in
// the table.
func (k Key) Name() string {
	return names[k]
}
