// Package extract turns a page's deduplicated object sequence into typed
// content elements.
//
// Revision history leaves two kinds of repetition behind: whole duplicated
// objects (full page copies) and duplicated elements that survive object
// dedup because their carriers differ. Both passes live here, on either
// side of the element builder.
package extract

import (
	"fmt"

	"github.com/tansell/onemark/model"
	"github.com/tansell/onemark/onestore"
	"github.com/tansell/onemark/property"
)

// DedupeObjects collapses repeated content-bearing objects left behind by
// revision copies, keeping the first occurrence of each content
// fingerprint. Structural objects (styles, outlines, list markers) carry
// no fingerprint and always survive: they are assumed unique per
// occurrence. Sequences shorter than four objects are returned unchanged.
func DedupeObjects(objects []onestore.Object) []onestore.Object {
	if len(objects) < 4 {
		return objects
	}

	fingerprints := make([]string, len(objects))
	var firstFP string
	firstSeen := false
	repeats := false
	for i, obj := range objects {
		fp := objectFingerprint(obj)
		fingerprints[i] = fp
		if fp == "" {
			continue
		}
		if !firstSeen {
			firstFP, firstSeen = fp, true
			continue
		}
		if fp == firstFP {
			repeats = true
		}
	}

	// Without a repeat of the first content fingerprint there is no
	// revision copy to strip.
	if !repeats {
		return objects
	}

	result := make([]onestore.Object, 0, len(objects))
	seen := make(map[string]bool)
	for i, obj := range objects {
		fp := fingerprints[i]
		if fp == "" {
			result = append(result, obj)
			continue
		}
		if !seen[fp] {
			seen[fp] = true
			result = append(result, obj)
		}
	}
	return result
}

// objectFingerprint derives the equality key used to recognize revision
// copies of a content object. The policy is intentionally loose: raw,
// undecoded field concatenation, used only for equality and never for
// semantics. Non-content kinds yield "" and are never deduplicated.
func objectFingerprint(obj onestore.Object) string {
	switch obj.Kind {
	case onestore.TagRichText:
		text := rawString(obj.Prop(property.RichEditTextUnicode))
		ascii := rawString(obj.Prop(property.TextExtendedAscii))
		if text == "" && ascii == "" {
			return ""
		}
		return "text:" + text + ":" + ascii
	case onestore.TagImageNode:
		filename := rawString(obj.Prop(property.ImageFilename))
		alt := rawString(obj.Prop(property.ImageAltText))
		if filename == "" && alt == "" {
			return ""
		}
		return "img:" + filename + ":" + alt
	case onestore.TagEmbeddedFile:
		name := rawString(obj.Prop(property.EmbeddedFileName))
		if name == "" {
			return ""
		}
		return "file:" + name
	default:
		return ""
	}
}

// DedupeElements is the second dedup pass, over built elements. Two rich
// text elements are duplicates only when both their text and their list,
// heading and indent context match; identical text under different list
// types is user content that must survive. Non-text elements always
// survive (object dedup already covered them).
func DedupeElements(elements []model.Element) []model.Element {
	if len(elements) < 2 {
		return elements
	}
	result := make([]model.Element, 0, len(elements))
	seen := make(map[string]bool)
	for _, elem := range elements {
		rt, ok := elem.(*model.RichText)
		if !ok {
			result = append(result, elem)
			continue
		}
		key := elementFingerprint(rt)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, elem)
	}
	return result
}

// elementFingerprint keys a rich text element by its rendered identity:
// text plus the context attributes that change how it renders.
func elementFingerprint(rt *model.RichText) string {
	return fmt.Sprintf("%s|%s|%d|%d", rt.Text(), rt.ListType, rt.HeadingLevel, rt.IndentLevel)
}

// rawString stringifies a raw property value for fingerprinting only.
func rawString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}
