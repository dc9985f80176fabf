// Package onestore defines the contract between a OneNote binary container
// decoder and the content-reconstruction pipeline.
//
// A container decoder walks the MS-ONESTORE record structure of a .one
// section file and produces a flat, revision-laden stream of typed objects
// plus a table of embedded binary blobs. This package defines those output
// types; the bit-level decoding itself lives behind the Decoder interface.
package onestore

import (
	"github.com/tansell/onemark/property"
)

// TypeTag identifies an object's JCID type by its canonical name.
type TypeTag string

// Object kinds that participate in content reconstruction.
const (
	TagSectionNode    TypeTag = "jcidSectionNode"
	TagSectionMeta    TypeTag = "jcidSectionMetaData"
	TagPageSeriesNode TypeTag = "jcidPageSeriesNode"
	TagPageManifest   TypeTag = "jcidPageManifestNode"
	TagPageNode       TypeTag = "jcidPageNode"
	TagPageMeta       TypeTag = "jcidPageMetaData"
	TagTitleNode      TypeTag = "jcidTitleNode"
	TagOutlineNode    TypeTag = "jcidOutlineNode"
	TagOutlineElement TypeTag = "jcidOutlineElementNode"
	TagRichText       TypeTag = "jcidRichTextOENode"
	TagImageNode      TypeTag = "jcidImageNode"
	TagTableNode      TypeTag = "jcidTableNode"
	TagTableRow       TypeTag = "jcidTableRowNode"
	TagTableCell      TypeTag = "jcidTableCellNode"
	TagEmbeddedFile   TypeTag = "jcidEmbeddedFileNode"
	TagNumberList     TypeTag = "jcidNumberListNode"
	TagStyleContainer TypeTag = "jcidPersistablePropertyContainerForTOCSection"
	TagParagraphStyle TypeTag = "jcidParagraphStyleObject"
	TagRevisionMeta   TypeTag = "jcidRevisionMetaData"
)

// Object is one typed object from the decoded stream. Its identity is the
// revision-scoped extended identifier; Properties holds the raw, untyped
// property bag (best-effort native primitives or raw byte strings, exactly
// as the container decoder produced them). Objects are immutable once
// produced.
type Object struct {
	Kind       TypeTag
	Identity   string
	Properties map[property.Key]any
}

// Prop returns the raw value for key, or nil when absent.
func (o Object) Prop(key property.Key) any {
	if o.Properties == nil {
		return nil
	}
	return o.Properties[key]
}

// Blob is one embedded binary payload from the container's file data store.
type Blob struct {
	ID   string
	Data []byte
}

// BlobTable is the ordered set of embedded blobs for one section file.
// Order matters: blob identifiers do not reliably correlate with object
// identities, so consumers bind images to blobs by content signature and
// take the first match.
type BlobTable []Blob

// Lookup returns the blob data for an identifier, or nil.
func (t BlobTable) Lookup(id string) []byte {
	for _, b := range t {
		if b.ID == id {
			return b.Data
		}
	}
	return nil
}

// Document is the full decoder output for one section file.
type Document struct {
	// Path is the source file path, used only for naming fallbacks.
	Path    string
	Objects []Object
	Blobs   BlobTable
}

// Decoder is implemented by binary container decoders that can produce a
// Document from a .one section file.
type Decoder interface {
	Decode(path string) (*Document, error)
}
