package property

import (
	"encoding/hex"
	"strings"
	"testing"
)

// utf16le encodes an ASCII string as UTF-16LE bytes for test input.
func utf16le(s string) []byte {
	b := make([]byte, 0, len(s)*2)
	for i := 0; i < len(s); i++ {
		b = append(b, s[i], 0)
	}
	return b
}

// ============================================================================
// DecodeText tests
// ============================================================================

func TestDecodeTextPlainString(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		enc  Encoding
		want string
	}{
		{"plain string", "Hello world", Unicode, "Hello world"},
		{"empty string", "", Unicode, ""},
		{"whitespace only", "   ", Unicode, ""},
		{"nil", nil, Unicode, ""},
		{"embedded nul stripped", "Hello\x00World", Unicode, "HelloWorld"},
		{"surrounding space trimmed", "  hello  ", Unicode, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeText(tt.raw, tt.enc); got != tt.want {
				t.Errorf("DecodeText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeTextBytes(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		enc  Encoding
		want string
	}{
		{"utf16le", utf16le("Hello"), Unicode, "Hello"},
		{"ascii with trailing nul", []byte("Hello\x00"), ASCII, "Hello"},
		{"empty", []byte{}, Unicode, ""},
		{"odd length falls back to 8-bit", []byte{'H', 'i', '!'}, Unicode, "Hi!"},
		{"unpaired high surrogate byte-preserved", []byte{0x00, 0xD8}, Unicode, "Ø"},
		{"lone low surrogate byte-preserved", []byte{0x00, 0xDC}, Unicode, "Ü"},
		{"trailing high surrogate byte-preserved", []byte{'A', 0x00, 0x00, 0xD8}, Unicode, "AØ"},
		{"valid surrogate pair decodes", []byte{0x3D, 0xD8, 0x00, 0xDE}, Unicode, "😀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeText(tt.raw, tt.enc); got != tt.want {
				t.Errorf("DecodeText(% x) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeTextHexString(t *testing.T) {
	// "Hello" as hex-encoded single-byte text.
	if got := DecodeText("48656c6c6f", ASCII); got != "Hello" {
		t.Errorf("hex ascii = %q, want Hello", got)
	}
	// "Hi" as hex-encoded UTF-16LE.
	if got := DecodeText("48006900", Unicode); got != "Hi" {
		t.Errorf("hex unicode = %q, want Hi", got)
	}
}

func TestDecodeTextHexRoundTrip(t *testing.T) {
	// Any printable ASCII text must survive a hex round trip.
	inputs := []string{"Hello", "notes 123", "A!@#$%^&*()"}
	for _, in := range inputs {
		enc := hex.EncodeToString([]byte(in))
		if got := DecodeText(enc, ASCII); got != in {
			t.Errorf("DecodeText(hex(%q)) = %q, want %q", in, got, in)
		}
	}
}

func TestDecodeTextGarbledRecovery(t *testing.T) {
	// Simulate the upstream bug: single-byte text decoded as UTF-16LE.
	// "Test OneNote page" pairs up into CJK-range code points.
	orig := "Test OneNote page!"
	var garbled []rune
	for i := 0; i+1 < len(orig); i += 2 {
		garbled = append(garbled, rune(uint16(orig[i])|uint16(orig[i+1])<<8))
	}
	got := DecodeText(string(garbled), ASCII)
	if got != orig {
		t.Errorf("garbled recovery = %q, want %q", got, orig)
	}
}

func TestDecodeTextIdempotent(t *testing.T) {
	// A clean string passes through unchanged any number of times.
	clean := "Meeting notes for Monday"
	once := DecodeText(clean, Unicode)
	twice := DecodeText(once, Unicode)
	if once != clean || twice != clean {
		t.Errorf("idempotence broken: %q -> %q -> %q", clean, once, twice)
	}
}

func TestDecodeTextNonString(t *testing.T) {
	if got := DecodeText(42, Unicode); got != "42" {
		t.Errorf("int value = %q, want 42", got)
	}
	if got := DecodeText(0, Unicode); got != "" {
		t.Errorf("zero int = %q, want empty", got)
	}
}

// ============================================================================
// Garbled heuristic tests
// ============================================================================

func TestLooksGarbled(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain sentence", "Hello world", false},
		{"empty", "", false},
		{"two chars high", "么开", false}, // too short to classify
		{"cjk heavy", "么开发", true},
		{"mostly latin", "abcdefghij么", false},
		{"just over threshold", "ab么开", true}, // 2 of 4 runes high
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksGarbled(tt.in); got != tt.want {
				t.Errorf("LooksGarbled(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// ============================================================================
// CleanText tests
// ============================================================================

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello\x00world", "helloworld"},
		{"  hello  ", "hello"},
		{"", ""},
		{"\x00\x00", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTextNoAllocWhenClean(t *testing.T) {
	s := "already clean"
	if got := CleanText(s); got != s {
		t.Errorf("CleanText(%q) = %q", s, got)
	}
	if !strings.Contains(s, "clean") {
		t.Fatal("test string corrupted")
	}
}
