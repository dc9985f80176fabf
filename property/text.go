package property

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding selects how byte-valued text properties are interpreted.
type Encoding int

const (
	// Unicode treats byte input as UTF-16LE (RichEditTextUnicode).
	Unicode Encoding = iota
	// ASCII treats byte input as one byte per character (TextExtendedAscii).
	ASCII
)

var (
	utf16Dec  = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	latin1Dec = charmap.ISO8859_1
)

// DecodeText decodes a raw text property value. Upstream decoders hand text
// over in several shapes: raw bytes, a plain string, a hex-encoded byte
// string, or a string that was wrongly UTF-16-decoded from single-byte
// text. DecodeText recognizes each shape and recovers the original text.
// It never fails; undecodable input degrades to "".
func DecodeText(raw any, enc Encoding) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case []byte:
		return decodeBytes(v, enc)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return ""
		}
		if isHexString(s) {
			if b, err := hex.DecodeString(s); err == nil {
				return decodeBytes(b, enc)
			}
		}
		if enc == ASCII && LooksGarbled(s) {
			if b, err := encodeUTF16LE(s); err == nil {
				return decodeLatin1ASCII(b, true)
			}
		}
		return CleanText(s)
	default:
		if asInt64(raw) == 0 && !AsBool(raw) {
			return ""
		}
		return CleanText(fmt.Sprint(v))
	}
}

// decodeBytes decodes raw text bytes per the requested encoding. UTF-16LE
// input that cannot be valid (odd length or unpaired surrogates) falls back
// to a byte-preserving 8-bit decode. The surrogate check matters because
// the UTF-16 decoder never errors on bad input; it substitutes U+FFFD,
// which would lose the original bytes.
func decodeBytes(b []byte, enc Encoding) string {
	if len(b) == 0 {
		return ""
	}
	if enc == ASCII {
		return decodeLatin1ASCII(b, true)
	}
	if len(b)%2 != 0 || !validUTF16LE(b) {
		return decodeLatin1ASCII(b, false)
	}
	s, _, err := transform.String(utf16Dec.NewDecoder(), string(b))
	if err != nil {
		return decodeLatin1ASCII(b, false)
	}
	return stripNUL(s)
}

// validUTF16LE reports whether b, read as little-endian 16-bit code units,
// contains only complete surrogate pairs.
func validUTF16LE(b []byte) bool {
	for i := 0; i+1 < len(b); i += 2 {
		u := uint16(b[i]) | uint16(b[i+1])<<8
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+3 >= len(b) {
				return false
			}
			next := uint16(b[i+2]) | uint16(b[i+3])<<8
			if next < 0xDC00 || next >= 0xE000 {
				return false
			}
			i += 2
		case u >= 0xDC00 && u < 0xE000:
			return false
		}
	}
	return true
}

// decodeLatin1ASCII decodes bytes one character each. With replaceHigh set,
// bytes above 0x7F become the replacement character (strict 7-bit ASCII);
// otherwise the byte value is preserved as its Latin-1 code point.
func decodeLatin1ASCII(b []byte, replaceHigh bool) string {
	if replaceHigh {
		var sb strings.Builder
		sb.Grow(len(b))
		for _, c := range b {
			if c > 0x7F {
				sb.WriteRune('�')
			} else if c != 0 {
				sb.WriteByte(c)
			}
		}
		return sb.String()
	}
	s, _, err := transform.String(latin1Dec.NewDecoder(), string(b))
	if err != nil {
		return ""
	}
	return stripNUL(s)
}

func encodeUTF16LE(s string) ([]byte, error) {
	out, _, err := transform.Bytes(utf16Dec.NewEncoder(), []byte(s))
	return out, err
}

// LooksGarbled reports whether a string looks like single-byte text that
// was wrongly decoded as UTF-16LE upstream. Such strings are dominated by
// code points above 0xFF (CJK and symbol characters for what should be
// plain text). Strings of two characters or fewer are never classified as
// garbled.
func LooksGarbled(s string) bool {
	runes := []rune(s)
	if len(runes) <= 2 {
		return false
	}
	high := 0
	for _, r := range runes {
		if r > 0xFF {
			high++
		}
	}
	return float64(high)/float64(len(runes)) > 0.3
}

// CleanText strips embedded NUL characters and surrounding whitespace.
func CleanText(s string) string {
	return strings.TrimSpace(stripNUL(s))
}

func stripNUL(s string) string {
	if !strings.ContainsRune(s, 0) {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

// isHexString reports whether s consists entirely of hexadecimal digits.
func isHexString(s string) bool {
	for i := 0; i < len(s); i++ {
		if hexDigit(s[i]) < 0 {
			return false
		}
	}
	return len(s) > 0
}
