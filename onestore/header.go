package onestore

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// File type GUIDs carried in the first sixteen bytes of an MS-ONESTORE
// header (guidFileType, mixed-endian on disk).
var (
	FileTypeOne  = uuid.MustParse("7B5C52E4-D88C-4DA7-AEB1-5378D02996D3")
	FileTypeToc2 = uuid.MustParse("43FF2FA1-EFD9-4C76-9EE2-10EA5722765F")
)

// FileType classifies a container file by its header GUID.
type FileType int

const (
	FileUnknown FileType = iota
	FileSection          // .one
	FileTOC              // .onetoc2
)

func (t FileType) String() string {
	switch t {
	case FileSection:
		return "section"
	case FileTOC:
		return "toc"
	default:
		return "unknown"
	}
}

// DetectFileType reads the header GUID from r and classifies the file.
// Returns FileUnknown (with a nil error) for well-formed reads that do not
// match a known GUID.
func DetectFileType(r io.Reader) (FileType, error) {
	var head [16]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return FileUnknown, fmt.Errorf("reading header: %w", err)
	}
	switch uuidFromMixedEndian(head) {
	case FileTypeOne:
		return FileSection, nil
	case FileTypeToc2:
		return FileTOC, nil
	default:
		return FileUnknown, nil
	}
}

// uuidFromMixedEndian converts the on-disk GUID layout (first three fields
// little-endian, rest big-endian) to a uuid.UUID.
func uuidFromMixedEndian(b [16]byte) uuid.UUID {
	var id uuid.UUID
	id[0], id[1], id[2], id[3] = b[3], b[2], b[1], b[0]
	id[4], id[5] = b[5], b[4]
	id[6], id[7] = b[7], b[6]
	copy(id[8:], b[8:])
	return id
}
