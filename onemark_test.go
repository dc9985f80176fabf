package onemark

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tansell/onemark/model"
	"github.com/tansell/onemark/onestore"
	"github.com/tansell/onemark/property"
)

func pageMeta(key, title string) onestore.Object {
	return onestore.Object{
		Kind:     onestore.TagPageMeta,
		Identity: fmt.Sprintf("<ExtendedGUID> (%s, 1)", key),
		Properties: map[property.Key]any{
			property.CachedTitleString: title,
		},
	}
}

func richText(key, text string) onestore.Object {
	return onestore.Object{
		Kind:     onestore.TagRichText,
		Identity: fmt.Sprintf("<ExtendedGUID> (%s, 1)", key),
		Properties: map[property.Key]any{
			property.RichEditTextUnicode: text,
		},
	}
}

func imageNode(key, filename string, data []byte) onestore.Object {
	return onestore.Object{
		Kind:     onestore.TagImageNode,
		Identity: fmt.Sprintf("<ExtendedGUID> (%s, 1)", key),
		Properties: map[property.Key]any{
			property.ImageFilename:    filename,
			property.PictureContainer: data,
		},
	}
}

func twoPageDocument() *onestore.Document {
	return &onestore.Document{
		Path: "/nb/Notes.one",
		Objects: []onestore.Object{
			pageMeta("X", "First"),
			richText("X", "alpha"),
			richText("X", "beta"),
			pageMeta("Y", "Second"),
			richText("Y", "gamma"),
		},
	}
}

// ============================================================================
// Section reconstruction
// ============================================================================

func TestSectionTwoPages(t *testing.T) {
	section, err := FromDocument(twoPageDocument()).Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if section.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", section.PageCount())
	}
	if section.Pages[0].Title != "First" || section.Pages[1].Title != "Second" {
		t.Errorf("page titles = %q, %q", section.Pages[0].Title, section.Pages[1].Title)
	}
	if got := section.Pages[0].ExtractText(); got != "alpha\nbeta\n" {
		t.Errorf("first page text = %q", got)
	}
	if section.Name != "Notes" {
		t.Errorf("section name = %q, want Notes", section.Name)
	}
}

func TestSectionRemovesRevisionDuplicates(t *testing.T) {
	doc := &onestore.Document{
		Path: "/nb/Notes.one",
		Objects: []onestore.Object{
			pageMeta("X", "Page"),
			richText("X", "one"),
			richText("X", "two"),
			richText("X", "one"),
			richText("X", "two"),
		},
	}
	section, err := FromDocument(doc).Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if got := section.Pages[0].ExtractText(); got != "one\ntwo\n" {
		t.Errorf("expected deduplicated text, got %q", got)
	}
}

func TestSectionUntitledFallback(t *testing.T) {
	doc := &onestore.Document{
		Path:    "/nb/Notes.one",
		Objects: []onestore.Object{richText("X", "content")},
	}
	section, err := FromDocument(doc).Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if section.PageCount() != 1 {
		t.Fatalf("expected single-page fallback, got %d pages", section.PageCount())
	}
	if section.Pages[0].Title != "Untitled" {
		t.Errorf("expected Untitled, got %q", section.Pages[0].Title)
	}
}

func TestSectionNilDocument(t *testing.T) {
	if _, err := FromDocument(nil).Section(); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestSectionParallelMatchesSequential(t *testing.T) {
	doc := twoPageDocument()
	seq, err := FromDocument(doc).Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	par, err := FromDocument(doc).Parallel().Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if seq.PageCount() != par.PageCount() {
		t.Fatalf("page counts differ: %d vs %d", seq.PageCount(), par.PageCount())
	}
	for i := range seq.Pages {
		if seq.Pages[i].Title != par.Pages[i].Title {
			t.Errorf("page %d title differs: %q vs %q", i, seq.Pages[i].Title, par.Pages[i].Title)
		}
		if seq.Pages[i].ExtractText() != par.Pages[i].ExtractText() {
			t.Errorf("page %d text differs", i)
		}
	}
}

// ============================================================================
// Options
// ============================================================================

func TestSectionNameOverride(t *testing.T) {
	section, err := FromDocument(twoPageDocument()).SectionName("Override").Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if section.Name != "Override" {
		t.Errorf("section name = %q", section.Name)
	}
}

func TestSectionNameFromMetadata(t *testing.T) {
	doc := twoPageDocument()
	doc.Objects = append(doc.Objects, onestore.Object{
		Kind:     onestore.TagSectionMeta,
		Identity: "<ExtendedGUID> (S, 1)",
		Properties: map[property.Key]any{
			property.SectionDisplayName: "Work Notes",
		},
	})
	section, err := FromDocument(doc).Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if section.Name != "Work Notes" {
		t.Errorf("section name = %q, want Work Notes", section.Name)
	}
}

func TestChainDoesNotMutateReceiver(t *testing.T) {
	base := FromDocument(twoPageDocument())
	_ = base.SectionName("Changed").Parallel()
	if base.options.sectionName != "" || base.options.parallel {
		t.Error("chain methods mutated the receiver")
	}
}

type fakeRecognizer struct {
	text string
	err  error
}

func (f fakeRecognizer) RecognizeImage(_ []byte) (string, error) {
	return f.text, f.err
}

var pngData = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 16)...)

func TestAltTextFillsEmptyAltText(t *testing.T) {
	doc := &onestore.Document{
		Path: "/nb/Notes.one",
		Objects: []onestore.Object{
			pageMeta("X", "Page"),
			imageNode("X", "shot.png", pngData),
		},
	}
	section, err := FromDocument(doc).AltText(fakeRecognizer{text: "recognized"}).Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	images := section.Pages[0].Images()
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	if images[0].AltText != "recognized" {
		t.Errorf("alt text = %q", images[0].AltText)
	}
}

func TestAltTextErrorLeavesAltEmpty(t *testing.T) {
	doc := &onestore.Document{
		Path: "/nb/Notes.one",
		Objects: []onestore.Object{
			pageMeta("X", "Page"),
			imageNode("X", "shot.png", pngData),
		},
	}
	section, err := FromDocument(doc).
		AltText(fakeRecognizer{err: errors.New("no engine")}).
		Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if alt := section.Pages[0].Images()[0].AltText; alt != "" {
		t.Errorf("expected empty alt text, got %q", alt)
	}
}

// overlapRecognizer reports whether two recognitions ever ran at once.
type overlapRecognizer struct {
	active   int32
	overlaps int32
}

func (r *overlapRecognizer) RecognizeImage(_ []byte) (string, error) {
	if atomic.AddInt32(&r.active, 1) > 1 {
		atomic.AddInt32(&r.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&r.active, -1)
	return "seen", nil
}

func TestAltTextSerializedUnderParallel(t *testing.T) {
	doc := &onestore.Document{Path: "/nb/Notes.one"}
	for i := 0; i < 8; i++ {
		key := fmt.Sprintf("P%d", i)
		doc.Objects = append(doc.Objects,
			pageMeta(key, fmt.Sprintf("Page %d", i)),
			imageNode(key, "shot.png", pngData),
		)
	}

	rec := &overlapRecognizer{}
	section, err := FromDocument(doc).Parallel().AltText(rec).Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if atomic.LoadInt32(&rec.overlaps) != 0 {
		t.Error("recognizer was invoked concurrently")
	}
	for i, page := range section.Pages {
		if images := page.Images(); len(images) != 1 || images[0].AltText != "seen" {
			t.Errorf("page %d alt text not filled", i)
		}
	}
}

// ============================================================================
// Open and Must
// ============================================================================

type fakeDecoder struct {
	doc *onestore.Document
	err error
}

func (f fakeDecoder) Decode(path string) (*onestore.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc := *f.doc
	doc.Path = path
	return &doc, nil
}

func TestOpenUsesDecoder(t *testing.T) {
	section, err := Open("/nb/Notes.one", fakeDecoder{doc: twoPageDocument()}).Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if section.FilePath != "/nb/Notes.one" {
		t.Errorf("file path = %q", section.FilePath)
	}
}

func TestOpenDecoderError(t *testing.T) {
	wantErr := errors.New("corrupt header")
	_, err := Open("/nb/Bad.one", fakeDecoder{err: wantErr}).Section()
	if !errors.Is(err, wantErr) {
		t.Errorf("expected decoder error, got %v", err)
	}
}

func TestMustPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Must[*model.Section](nil, errors.New("boom"))
}

func TestMustReturnsValue(t *testing.T) {
	section := Must(FromDocument(twoPageDocument()).Section())
	if section == nil {
		t.Fatal("expected section")
	}
}
