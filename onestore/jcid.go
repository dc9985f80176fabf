package onestore

import "fmt"

// JCID is the numeric object type identifier stored in the container. The
// low word is an index and the high word carries flag bits; the combined
// 32-bit value identifies the node type.
type JCID uint32

// Numeric JCID values for the object kinds this package names.
const (
	JCIDSectionNode    JCID = 0x00060007
	JCIDPageSeriesNode JCID = 0x00060008
	JCIDPageNode       JCID = 0x0006000B
	JCIDOutlineNode    JCID = 0x0006000C
	JCIDOutlineElement JCID = 0x0006000D
	JCIDRichText       JCID = 0x0006000E
	JCIDImageNode      JCID = 0x00060011
	JCIDNumberList     JCID = 0x00060012
	JCIDTableNode      JCID = 0x00060022
	JCIDTableRow       JCID = 0x00060023
	JCIDTableCell      JCID = 0x00060024
	JCIDTitleNode      JCID = 0x0006002C
	JCIDEmbeddedFile   JCID = 0x00060035
	JCIDPageManifest   JCID = 0x00060037
	JCIDPageMeta       JCID = 0x00020030
	JCIDSectionMeta    JCID = 0x00020031
	JCIDRevisionMeta   JCID = 0x00020044
	JCIDParagraphStyle JCID = 0x0012004D
)

var jcidTags = map[JCID]TypeTag{
	JCIDSectionNode:    TagSectionNode,
	JCIDPageSeriesNode: TagPageSeriesNode,
	JCIDPageNode:       TagPageNode,
	JCIDOutlineNode:    TagOutlineNode,
	JCIDOutlineElement: TagOutlineElement,
	JCIDRichText:       TagRichText,
	JCIDImageNode:      TagImageNode,
	JCIDNumberList:     TagNumberList,
	JCIDTableNode:      TagTableNode,
	JCIDTableRow:       TagTableRow,
	JCIDTableCell:      TagTableCell,
	JCIDTitleNode:      TagTitleNode,
	JCIDEmbeddedFile:   TagEmbeddedFile,
	JCIDPageManifest:   TagPageManifest,
	JCIDPageMeta:       TagPageMeta,
	JCIDSectionMeta:    TagSectionMeta,
	JCIDRevisionMeta:   TagRevisionMeta,
	JCIDParagraphStyle: TagParagraphStyle,
}

// Tag maps a numeric JCID onto its named TypeTag. Unknown values map onto
// a hex-formatted placeholder tag so the object survives the pipeline as a
// structural (non-content) object instead of being dropped.
func (j JCID) Tag() TypeTag {
	if tag, ok := jcidTags[j]; ok {
		return tag
	}
	return TypeTag(fmt.Sprintf("jcid(0x%08X)", uint32(j)))
}

func (j JCID) String() string {
	return string(j.Tag())
}
