package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tansell/onemark/model"
)

// Writer writes rendered sections to an output directory tree. Each
// section gets its own directory (unless Flat is set), each page one file
// named after its title, and image and attachment payloads land in
// images/ and attachments/ subdirectories next to the page files.
type Writer struct {
	outputDir string
	conv      Converter
	log       zerolog.Logger
	flat      bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger routes per-file write logging to the given logger. Writers
// are silent by default.
func WithLogger(log zerolog.Logger) WriterOption {
	return func(w *Writer) { w.log = log }
}

// Flat writes page files directly into the output directory instead of a
// per-section subdirectory.
func Flat() WriterOption {
	return func(w *Writer) { w.flat = true }
}

// NewWriter creates a Writer that renders with conv under outputDir.
func NewWriter(outputDir string, conv Converter, opts ...WriterOption) *Writer {
	w := &Writer{
		outputDir: outputDir,
		conv:      conv,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteNotebook writes every section of a notebook under a directory named
// after the notebook. Returns the paths of all created files.
func (w *Writer) WriteNotebook(notebook *model.Notebook) ([]string, error) {
	notebookDir := filepath.Join(w.outputDir, SanitizeFilename(notebook.Name))

	var created []string
	for _, section := range notebook.Sections {
		files, err := w.writeSection(section, notebookDir)
		if err != nil {
			return created, err
		}
		created = append(created, files...)
	}
	return created, nil
}

// WriteSection writes one section's pages, images and attachments.
// Returns the paths of all created files.
func (w *Writer) WriteSection(section *model.Section) ([]string, error) {
	return w.writeSection(section, w.outputDir)
}

func (w *Writer) writeSection(section *model.Section, baseDir string) ([]string, error) {
	sectionDir := baseDir
	if !w.flat {
		sectionDir = filepath.Join(baseDir, SanitizeFilename(section.Name))
	}
	if err := os.MkdirAll(sectionDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating section directory: %w", err)
	}

	var created []string
	seen := map[string]int{}

	for _, page := range section.Pages {
		content := w.conv.RenderPage(page)
		filename := pageFilename(page.Title, seen, w.conv.Extension())
		pagePath := filepath.Join(sectionDir, filename)

		if err := os.WriteFile(pagePath, []byte(content), 0o644); err != nil {
			return created, fmt.Errorf("writing page %q: %w", page.Title, err)
		}
		created = append(created, pagePath)
		w.log.Info().Str("path", pagePath).Msg("wrote page")

		files, err := w.writeImages(page, sectionDir)
		if err != nil {
			return created, err
		}
		created = append(created, files...)

		files, err = w.writeAttachments(page, sectionDir)
		if err != nil {
			return created, err
		}
		created = append(created, files...)
	}

	return created, nil
}

func (w *Writer) writeImages(page *model.Page, sectionDir string) ([]string, error) {
	var created []string
	imagesDir := filepath.Join(sectionDir, "images")

	count := 0
	for _, img := range page.Images() {
		if len(img.Data) == 0 {
			continue
		}
		if err := os.MkdirAll(imagesDir, 0o755); err != nil {
			return created, fmt.Errorf("creating images directory: %w", err)
		}
		count++

		name := img.Filename
		if name == "" {
			ext := img.Format
			if ext == "" {
				ext = "bin"
			}
			name = fmt.Sprintf("image_%03d.%s", count, ext)
		}
		imgPath := filepath.Join(imagesDir, SanitizeFilename(name))

		if err := os.WriteFile(imgPath, img.Data, 0o644); err != nil {
			return created, fmt.Errorf("writing image %q: %w", name, err)
		}
		created = append(created, imgPath)
		w.log.Info().Str("path", imgPath).Msg("wrote image")
	}

	return created, nil
}

func (w *Writer) writeAttachments(page *model.Page, sectionDir string) ([]string, error) {
	var created []string
	attachmentsDir := filepath.Join(sectionDir, "attachments")

	for _, ef := range page.Attachments() {
		if len(ef.Data) == 0 {
			continue
		}
		if err := os.MkdirAll(attachmentsDir, 0o755); err != nil {
			return created, fmt.Errorf("creating attachments directory: %w", err)
		}

		name := ef.Filename
		if name == "" {
			name = "attachment"
		}
		filePath := filepath.Join(attachmentsDir, SanitizeFilename(name))

		if err := os.WriteFile(filePath, ef.Data, 0o644); err != nil {
			return created, fmt.Errorf("writing attachment %q: %w", name, err)
		}
		created = append(created, filePath)
		w.log.Info().Str("path", filePath).Msg("wrote attachment")
	}

	return created, nil
}
