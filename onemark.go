// Package onemark provides a fluent API for reconstructing readable content
// from decoded OneNote section files.
//
// Basic usage:
//
//	section, err := onemark.FromDocument(doc).Section()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	section, err := onemark.FromDocument(doc).
//	    SectionName("Meeting Notes").
//	    Parallel().
//	    Section()
//
// The input Document comes from a container decoder implementing
// onestore.Decoder; the lower-level pages and extract packages are also
// available for callers that need the intermediate representations.
package onemark

import (
	"fmt"
	"sync"

	"github.com/tansell/onemark/discover"
	"github.com/tansell/onemark/extract"
	"github.com/tansell/onemark/model"
	"github.com/tansell/onemark/onestore"
	"github.com/tansell/onemark/pages"
)

// Recognizer turns image data into text. The ocr package's Client
// satisfies this when built with the ocr tag. Calls are always made from a
// single goroutine, even under Parallel, so implementations need not be
// safe for concurrent use.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}

// FromDocument creates an Extractor over an already-decoded document.
//
// Example:
//
//	section, err := onemark.FromDocument(doc).Section()
func FromDocument(doc *onestore.Document) *Extractor {
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Open decodes the section file at path with dec and returns an Extractor
// over the result.
//
// Example:
//
//	section, err := onemark.Open("Notes.one", dec).Section()
func Open(path string, dec onestore.Decoder) *Extractor {
	doc, err := dec.Decode(path)
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
		err:     err,
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	section := onemark.Must(onemark.FromDocument(doc).Section())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Extractor provides a fluent interface for turning a decoded document
// into a reconstructed section. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	doc *onestore.Document

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor so chain methods never mutate
// their receiver.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		doc:     e.doc,
		options: e.options.clone(),
		err:     e.err,
	}
}

// SectionName overrides the section display name. Without it, the name is
// recovered from the section metadata, falling back to the file path.
func (e *Extractor) SectionName(name string) *Extractor {
	ne := e.clone()
	ne.options.sectionName = name
	return ne
}

// Parallel reconstructs pages concurrently. Page order in the result is
// unaffected.
func (e *Extractor) Parallel() *Extractor {
	ne := e.clone()
	ne.options.parallel = true
	return ne
}

// AltText fills in empty image alt text by running r over the image data.
// Recognition errors are ignored; the alt text simply stays empty.
func (e *Extractor) AltText(r Recognizer) *Extractor {
	ne := e.clone()
	ne.options.altText = r
	return ne
}

// Section reconstructs the full section: pages in document order, each
// with its deduplicated content elements.
func (e *Extractor) Section() (*model.Section, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.doc == nil {
		return nil, fmt.Errorf("no document specified")
	}

	section := &model.Section{
		Name:     e.sectionName(),
		FilePath: e.doc.Path,
	}

	buckets := pages.Build(e.doc.Objects)
	built := make([]*model.Page, len(buckets))

	if e.options.parallel {
		var wg sync.WaitGroup
		for i, bucket := range buckets {
			wg.Add(1)
			go func(i int, bucket *pages.Page) {
				defer wg.Done()
				built[i] = e.buildPage(bucket)
			}(i, bucket)
		}
		wg.Wait()
	} else {
		for i, bucket := range buckets {
			built[i] = e.buildPage(bucket)
		}
	}

	// Alt-text recognition stays serialized: the recognizer is shared and
	// may not tolerate concurrent calls.
	if e.options.altText != nil {
		for _, page := range built {
			e.fillAltText(page)
		}
	}

	for _, page := range built {
		section.AddPage(page)
	}
	return section, nil
}

// buildPage runs one page bucket through the content pipeline.
func (e *Extractor) buildPage(bucket *pages.Page) *model.Page {
	title := bucket.Title
	if title == "" {
		title = "Untitled"
	}
	page := &model.Page{
		Title:            title,
		Level:            bucket.Level,
		Author:           bucket.Author,
		CreationTime:     bucket.CreationTime,
		LastModifiedTime: bucket.LastModified,
	}

	objects := extract.DedupeObjects(bucket.Objects)
	elements := extract.BuildElements(objects, e.doc.Blobs)
	page.Elements = extract.DedupeElements(elements)
	return page
}

// fillAltText runs the recognizer over images that carry data but no alt
// text. Failures leave the alt text empty.
func (e *Extractor) fillAltText(page *model.Page) {
	for _, img := range page.Images() {
		if img.AltText != "" || len(img.Data) == 0 {
			continue
		}
		if text, err := e.options.altText.RecognizeImage(img.Data); err == nil {
			img.AltText = text
		}
	}
}

// sectionName resolves the section display name: the configured override,
// then the name recorded in the section metadata, then the file path.
func (e *Extractor) sectionName() string {
	if e.options.sectionName != "" {
		return e.options.sectionName
	}
	if name := pages.SectionName(e.doc.Objects); name != "" {
		return name
	}
	return discover.SectionNameFromPath(e.doc.Path)
}
