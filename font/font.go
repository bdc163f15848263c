package font

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// missingName stands in for fonts that carry no name of their own.
const missingName = "MISSING_NAME"

var (
	// ErrMissingEncoding is returned for fonts with neither a ToUnicode map
	// nor an /Encoding entry.
	ErrMissingEncoding = errors.New("font has no usable encoding")

	// ErrUTF16Decode is returned when a string shown with no resolved font
	// is neither valid UTF-16BE (after a byte order mark) nor valid UTF-8.
	ErrUTF16Decode = errors.New("text is not valid UTF-16BE or UTF-8")
)

// MissingEncodingError names the font that could not be given a decoder.
type MissingEncodingError struct {
	Font string
}

func (e *MissingEncodingError) Error() string {
	return fmt.Sprintf("font %s: no ToUnicode map or encoding", e.Font)
}

// Unwrap lets errors.Is match ErrMissingEncoding.
func (e *MissingEncodingError) Unwrap() error {
	return ErrMissingEncoding
}

// Resource is the part of a PDF font dictionary needed to decode text.
// It is filled in by the document layer, which resolves indirect objects
// and decodes the ToUnicode stream.
type Resource struct {
	// Name is the font's declared /Name, falling back to /BaseFont.
	Name string

	// ToUnicode holds the decoded ToUnicode stream, or nil if absent.
	ToUnicode []byte

	// Encoding is nil when the font has no /Encoding entry.
	Encoding *EncodingSpec
}

// EncodingSpec is a simple font encoding: an optional base plus overrides.
type EncodingSpec struct {
	// BaseEncoding is the name of the base encoding. Empty means the
	// font declares none.
	BaseEncoding string

	// Differences maps codes to glyph names.
	Differences map[byte]string
}

// Kind identifies how an Info turns bytes into text.
type Kind int

const (
	// KindRawBytes decodes strings as UTF-16BE (with BOM) or UTF-8.
	KindRawBytes Kind = iota
	// KindDifferenceMap decodes one byte per character through a base
	// encoding overlaid with /Differences.
	KindDifferenceMap
	// KindUnicodeMap decodes through a ToUnicode CMap.
	KindUnicodeMap
)

func (k Kind) String() string {
	switch k {
	case KindRawBytes:
		return "raw"
	case KindDifferenceMap:
		return "differences"
	case KindUnicodeMap:
		return "tounicode"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Info is the decoding strategy for one font. The zero value and a nil
// *Info both decode as KindRawBytes. An Info is immutable once built.
type Info struct {
	name  string
	kind  Kind
	table [256]string
	cmap  *CMap
}

// RawBytes is the shared strategy used when no font could be resolved.
var RawBytes = &Info{kind: KindRawBytes}

// New builds the decoding strategy for res. A parsable ToUnicode map takes
// priority over the font's encoding.
func New(res Resource) (*Info, error) {
	name := res.Name
	if name == "" {
		name = missingName
	}

	if res.ToUnicode != nil {
		if cm, err := ParseCMap(res.ToUnicode); err == nil {
			return &Info{name: name, kind: KindUnicodeMap, cmap: cm}, nil
		}
	}

	if res.Encoding == nil {
		return nil, &MissingEncodingError{Font: name}
	}

	base, err := GetEncoding(res.Encoding.BaseEncoding)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", name, err)
	}
	return NewDifferenceMap(name, base, res.Encoding.Differences), nil
}

// NewDifferenceMap builds a KindDifferenceMap strategy. base may be nil.
// An override whose glyph name is unknown leaves its code unmapped.
func NewDifferenceMap(name string, base Encoding, differences map[byte]string) *Info {
	info := &Info{name: name, kind: KindDifferenceMap}
	if base != nil {
		for code := 0; code < 256; code++ {
			if r, ok := base.Lookup(byte(code)); ok {
				info.table[code] = string(r)
			}
		}
	}
	for code, glyph := range differences {
		s, _ := GlyphToUnicode(glyph)
		info.table[code] = s
	}
	return info
}

// NewUnicodeMap builds a KindUnicodeMap strategy around cm.
func NewUnicodeMap(name string, cm *CMap) *Info {
	return &Info{name: name, kind: KindUnicodeMap, cmap: cm}
}

// Name returns the font name the strategy was built for.
func (f *Info) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// Kind returns the decoding strategy.
func (f *Info) Kind() Kind {
	if f == nil {
		return KindRawBytes
	}
	return f.kind
}

// Decode turns the bytes of a shown string into text.
func (f *Info) Decode(data []byte) (string, error) {
	switch f.Kind() {
	case KindDifferenceMap:
		var b strings.Builder
		for _, c := range data {
			b.WriteString(f.table[c])
		}
		return b.String(), nil

	case KindUnicodeMap:
		var b strings.Builder
		if hasUTF16BOM(data) {
			// Two-byte codes follow the marker; a trailing odd byte
			// is ignored.
			for i := 2; i+1 < len(data); i += 2 {
				code := uint32(data[i])<<8 | uint32(data[i+1])
				if s, ok := f.cmap.Lookup(code); ok {
					b.WriteString(s)
				}
			}
			return b.String(), nil
		}
		for _, c := range data {
			if s, ok := f.cmap.Lookup(uint32(c)); ok {
				b.WriteString(s)
			}
		}
		return b.String(), nil

	default:
		return decodeRaw(data)
	}
}

// decodeRaw decodes text for which no font is known.
func decodeRaw(data []byte) (string, error) {
	if hasUTF16BOM(data) {
		return decodeUTF16BE(data[2:])
	}
	if !utf8.Valid(data) {
		return "", ErrUTF16Decode
	}
	return string(data), nil
}

// decodeUTF16BE strictly decodes big-endian UTF-16. Unpaired surrogates
// and a dangling byte are errors.
func decodeUTF16BE(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", ErrUTF16Decode
	}
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
	}
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case utf16.IsSurrogate(rune(u)) && u < 0xDC00:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return "", ErrUTF16Decode
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", ErrUTF16Decode
		}
	}
	return string(utf16.Decode(units)), nil
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF
}
