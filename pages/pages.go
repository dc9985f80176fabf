// Package pages reconstructs page boundaries and ordering from the flat,
// revision-laden object stream of a decoded section file.
//
// The container keeps a full copy of every page revision, so the stream
// holds many near-identical groups of objects whose only grouping signal is
// the revision family key embedded in each object's identity string. This
// package buckets objects by that key, keeps the most recent metadata per
// logical page, and falls back to coarser groupings when the key scheme
// does not line up.
package pages

import (
	"fmt"
	"strings"

	"github.com/tansell/onemark/onestore"
	"github.com/tansell/onemark/property"
	"github.com/tansell/onemark/revision"
)

// Page is one reconstructed page: its metadata plus the ordered objects
// attributed to it. Objects still carry revision duplicates at this point;
// deduplication happens downstream.
type Page struct {
	Title        string
	Level        int
	Author       string
	CreationTime string
	LastModified string
	Objects      []onestore.Object
}

// contentTags are the object kinds that can contribute to page content,
// directly (rich text, images, tables, files) or structurally (outlines,
// list markers). Style containers travel with them so the element builder
// can consume formatting context in stream order.
var contentTags = map[onestore.TypeTag]bool{
	onestore.TagRichText:       true,
	onestore.TagImageNode:      true,
	onestore.TagTableNode:      true,
	onestore.TagTableRow:       true,
	onestore.TagTableCell:      true,
	onestore.TagEmbeddedFile:   true,
	onestore.TagOutlineNode:    true,
	onestore.TagOutlineElement: true,
	onestore.TagNumberList:     true,
	onestore.TagStyleContainer: true,
}

// Build groups the flat object stream into pages in document order.
//
// Revision handling: page metadata objects are walked newest-first and only
// the first (most recent) metadata per family key is kept. Content objects
// are attributed to a page when their family key matches either the page's
// own key or the key of the newest page node, since final-revision content
// is often keyed only under the latter.
func Build(objects []onestore.Object) []*Page {
	var metas, pageNodes []onestore.Object
	var content []onestore.Object

	for _, obj := range objects {
		switch {
		case obj.Kind == onestore.TagPageMeta:
			metas = append(metas, obj)
		case obj.Kind == onestore.TagPageNode:
			pageNodes = append(pageNodes, obj)
		case contentTags[obj.Kind]:
			content = append(content, obj)
		}
	}

	// Fallback 1: no page metadata at all. Emit a single page holding all
	// content in original order.
	if len(metas) == 0 {
		if len(content) == 0 {
			return nil
		}
		return []*Page{{Objects: content}}
	}

	// The newest page node's family key marks the current revision.
	latestKey := ""
	if len(pageNodes) > 0 {
		latestKey = revision.FamilyKey(pageNodes[len(pageNodes)-1].Identity)
	}

	// Walk metadata newest-first, keeping one page per family key.
	var built []*Page
	seen := make(map[string]bool)
	for i := len(metas) - 1; i >= 0; i-- {
		meta := metas[i]
		key := revision.FamilyKey(meta.Identity)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		page := &Page{
			Title:        property.DecodeText(meta.Prop(property.CachedTitleString), property.Unicode),
			Level:        property.Decode(property.PageLevel, meta.Prop(property.PageLevel)).Int(),
			CreationTime: rawString(meta.Prop(property.TopologyCreationTimeStamp)),
		}

		for _, obj := range content {
			objKey := revision.FamilyKey(obj.Identity)
			if objKey == key || (latestKey != "" && objKey == latestKey) {
				page.Objects = append(page.Objects, obj)
			}
		}

		for _, pn := range pageNodes {
			pnKey := revision.FamilyKey(pn.Identity)
			if pnKey == key || (latestKey != "" && pnKey == latestKey) {
				page.Author = property.DecodeText(pn.Prop(property.Author), property.Unicode)
				page.LastModified = lastModified(pn)
			}
		}

		built = append(built, page)
	}

	// Restore document order.
	for i, j := 0, len(built)-1; i < j; i, j = i+1, j-1 {
		built[i], built[j] = built[j], built[i]
	}

	// Fallback 2: family keys of metadata and content never intersected.
	// Recover by assigning all content to the first page.
	recoverToFirstPage(built, content)

	return dedupeByTitle(built)
}

// recoverToFirstPage assigns the whole content stream to the first page
// when no page received any objects.
func recoverToFirstPage(built []*Page, content []onestore.Object) {
	if len(built) == 0 {
		return
	}
	for _, p := range built {
		if len(p.Objects) > 0 {
			return
		}
	}
	built[0].Objects = content
}

// dedupeByTitle collapses pages whose normalized titles match, keeping the
// copy with the larger object count. Revision chains that changed their key
// scheme produce duplicate page buckets that only the title identifies.
func dedupeByTitle(pages []*Page) []*Page {
	var deduped []*Page
	index := make(map[string]int)
	for _, page := range pages {
		key := strings.ToLower(strings.TrimSpace(page.Title))
		if at, ok := index[key]; ok {
			if len(page.Objects) > len(deduped[at].Objects) {
				deduped[at] = page
			}
			continue
		}
		index[key] = len(deduped)
		deduped = append(deduped, page)
	}
	return deduped
}

// SectionName extracts the section display name from the stream's section
// metadata, or "" when none is present.
func SectionName(objects []onestore.Object) string {
	for _, obj := range objects {
		if obj.Kind != onestore.TagSectionMeta {
			continue
		}
		if name := property.DecodeText(obj.Prop(property.SectionDisplayName), property.Unicode); name != "" {
			return name
		}
	}
	return ""
}

// lastModified prefers the eight-byte timestamp over the legacy four-byte
// field.
func lastModified(pn onestore.Object) string {
	if v := pn.Prop(property.LastModifiedTimeStamp); v != nil {
		return rawString(v)
	}
	return rawString(pn.Prop(property.LastModifiedTime))
}

// rawString stringifies a timestamp-like raw value without reinterpreting
// it. Timestamps only pass through to renderers, so no decoding heuristics
// apply.
func rawString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
