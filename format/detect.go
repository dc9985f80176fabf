// Package format provides binary image format detection for embedded
// picture data.
//
// OneNote containers store picture payloads in a blob table whose
// identifiers do not reliably correlate with the picture objects that use
// them, so magic-byte sniffing is the only dependable way to classify (and
// bind) image data.
package format

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Image represents a recognized embedded image format.
type Image int

const (
	// ImageUnknown indicates unrecognized image data.
	ImageUnknown Image = iota
	// ImagePNG indicates a PNG image.
	ImagePNG
	// ImageJPEG indicates a JPEG image.
	ImageJPEG
	// ImageGIF indicates a GIF image (87a or 89a).
	ImageGIF
	// ImageBMP indicates a Windows bitmap.
	ImageBMP
	// ImageWEBP indicates a WebP image.
	ImageWEBP
)

// String returns the lowercase format name, or "" when unknown.
func (f Image) String() string {
	switch f {
	case ImagePNG:
		return "png"
	case ImageJPEG:
		return "jpeg"
	case ImageGIF:
		return "gif"
	case ImageBMP:
		return "bmp"
	case ImageWEBP:
		return "webp"
	default:
		return ""
	}
}

// Extension returns the typical file extension, without the dot, or ""
// when unknown.
func (f Image) Extension() string { return f.String() }

var (
	pngMagic   = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic  = []byte{0xFF, 0xD8, 0xFF}
	gif87Magic = []byte("GIF87a")
	gif89Magic = []byte("GIF89a")
	bmpMagic   = []byte("BM")
	riffMagic  = []byte("RIFF")
	webpMagic  = []byte("WEBP")
)

// DetectImage classifies image data by its magic bytes. Inputs shorter
// than four bytes are always unrecognized.
func DetectImage(data []byte) Image {
	if len(data) < 4 {
		return ImageUnknown
	}
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return ImagePNG
	case bytes.HasPrefix(data, jpegMagic):
		return ImageJPEG
	case bytes.HasPrefix(data, gif87Magic), bytes.HasPrefix(data, gif89Magic):
		return ImageGIF
	case bytes.HasPrefix(data, bmpMagic):
		return ImageBMP
	case bytes.HasPrefix(data, riffMagic) && len(data) > 11 && bytes.Equal(data[8:12], webpMagic):
		return ImageWEBP
	default:
		return ImageUnknown
	}
}

// Dimensions probes the pixel dimensions of image data without decoding
// the full image. Returns ok=false when the data cannot be parsed.
func Dimensions(data []byte) (width, height int, ok bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
