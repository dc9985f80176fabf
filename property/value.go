package property

import (
	"strings"
)

// Kind identifies which variant a decoded Value holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindBool
	KindInt
	KindBytes
	KindRef
	KindRefs
)

// Value is the decoded form of a raw property value. Exactly one variant is
// populated, selected by Kind. A mismatched accessor returns the zero value,
// so consumers can treat unexpected variants as absent.
type Value struct {
	Kind  Kind
	b     bool
	n     int64
	width int
	bytes []byte
	refs  []string
}

// Bool returns the boolean variant, or false for any other kind.
func (v Value) Bool() bool {
	if v.Kind == KindBool {
		return v.b
	}
	if v.Kind == KindInt {
		return v.n != 0
	}
	return false
}

// Int returns the integer variant, or 0 for any other kind.
func (v Value) Int() int {
	if v.Kind == KindInt {
		return int(v.n)
	}
	return 0
}

// Int64 returns the integer variant at full width, or 0 for any other kind.
func (v Value) Int64() int64 {
	if v.Kind == KindInt {
		return v.n
	}
	return 0
}

// Width returns the byte width of the integer variant (1, 2, 4 or 8).
func (v Value) Width() int { return v.width }

// Bytes returns the length-prefixed data variant, or nil.
func (v Value) Bytes() []byte {
	if v.Kind == KindBytes {
		return v.bytes
	}
	return nil
}

// Ref returns the object reference variant, or "".
func (v Value) Ref() string {
	if v.Kind == KindRef {
		return v.refs[0]
	}
	return ""
}

// Refs returns the reference array variant, or nil.
func (v Value) Refs() []string {
	if v.Kind == KindRefs {
		return v.refs
	}
	return nil
}

// Decode interprets a raw property value according to the type tag packed
// into key. Decoding never fails: unrecognized or malformed input degrades
// to the zero value of the expected variant, and a nil raw value decodes to
// the absent Value.
func Decode(key Key, raw any) Value {
	if raw == nil {
		return Value{}
	}
	switch t := key.TypeOf(); t {
	case Bool:
		return Value{Kind: KindBool, b: AsBool(raw)}
	case OneByte, TwoBytes, FourBytes, EightBytes:
		w := t.Width()
		return Value{Kind: KindInt, n: coerceInt(raw, w), width: w}
	case FourBytesOfLengthFollowedByData:
		return Value{Kind: KindBytes, bytes: coerceBytes(raw)}
	case ObjectID, ObjectSpaceID, ContextID:
		if s := refString(raw); s != "" {
			return Value{Kind: KindRef, refs: []string{s}}
		}
		return Value{}
	case ArrayOfObjectIDs, ArrayOfObjectSpaceIDs, ArrayOfContextIDs:
		if refs := refStrings(raw); len(refs) > 0 {
			return Value{Kind: KindRefs, refs: refs}
		}
		return Value{}
	default:
		return Value{}
	}
}

// AsBool coerces a raw property value to a boolean. Strings accept the
// usual spellings; numbers are true when non-zero.
func AsBool(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			return true
		}
		return false
	case []byte:
		return len(v) > 0 && v[0] != 0
	default:
		return asInt64(raw) != 0
	}
}

// coerceInt decodes a raw value as an integer of the given byte width.
// Accepts native integers, little-endian byte sequences (shorter input is
// zero-padded to the width), byte-string literals, and strings containing a
// decimal digit run. Anything else decodes to 0.
func coerceInt(raw any, width int) int64 {
	switch v := raw.(type) {
	case []byte:
		return leInt(v, width)
	case string:
		if lit, ok := ParseByteLiteral(v); ok {
			// The literal grammar guarantees at least two bytes of
			// significance; shorter literals are not trusted.
			if len(lit) < 2 {
				return 0
			}
			return leInt(lit, width)
		}
		return digitRun(v)
	default:
		return asInt64(raw)
	}
}

// leInt reads up to width little-endian bytes, zero-padding short input.
func leInt(b []byte, width int) int64 {
	if len(b) == 0 {
		return 0
	}
	if width <= 0 || width > 8 {
		width = 8
	}
	var n int64
	for i := 0; i < width && i < len(b); i++ {
		n |= int64(b[i]) << (8 * i)
	}
	return n
}

// digitRun extracts the first run of decimal digits from a string, for
// values that were stringified upstream ("size: 12pt" decodes to 12).
func digitRun(s string) int64 {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseDigits(s[start:i])
		}
	}
	if start >= 0 {
		return parseDigits(s[start:])
	}
	return 0
}

func parseDigits(s string) int64 {
	var n int64
	for _, r := range s {
		n = n*10 + int64(r-'0')
		if n < 0 { // overflow; saturate rather than wrap
			return 0
		}
	}
	return n
}

func asInt64(raw any) int64 {
	switch v := raw.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func coerceBytes(raw any) []byte {
	switch v := raw.(type) {
	case []byte:
		return v
	case string:
		if lit, ok := ParseByteLiteral(v); ok {
			return lit
		}
		return []byte(v)
	default:
		return nil
	}
}

func refString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func refStrings(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		refs := make([]string, 0, len(v))
		for _, e := range v {
			if s := refString(e); s != "" {
				refs = append(refs, s)
			}
		}
		return refs
	default:
		return nil
	}
}

// ParseByteLiteral recognizes the printed byte-string form some upstream
// decoders hand over instead of raw bytes: the sequence is wrapped in b'...'
// quotes with backslash-escaped hex bytes (\xHH) and literal ASCII bytes,
// e.g. b'$\x00'. Returns the unescaped bytes and whether the input matched
// the grammar.
func ParseByteLiteral(s string) ([]byte, bool) {
	if len(s) < 3 || !strings.HasPrefix(s, "b'") || !strings.HasSuffix(s, "'") {
		return nil, false
	}
	body := s[2 : len(s)-1]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return nil, false
		}
		switch body[i+1] {
		case 'x':
			if i+4 > len(body) {
				return nil, false
			}
			hi := hexDigit(body[i+2])
			lo := hexDigit(body[i+3])
			if hi < 0 || lo < 0 {
				return nil, false
			}
			out = append(out, byte(hi<<4|lo))
			i += 4
		case '\\':
			out = append(out, '\\')
			i += 2
		case '\'':
			out = append(out, '\'')
			i += 2
		case 'n':
			out = append(out, '\n')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case '0':
			out = append(out, 0)
			i += 2
		default:
			return nil, false
		}
	}
	return out, true
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}
