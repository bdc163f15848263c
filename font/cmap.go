package font

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ErrEmptyCMap is returned when a ToUnicode stream contains no usable
// bfchar or bfrange mappings.
var ErrEmptyCMap = errors.New("cmap has no mappings")

// CMap maps character codes to Unicode text, as described by a ToUnicode
// stream. Codes are stored as integers regardless of their byte width.
type CMap struct {
	// Single character mappings: charCode -> unicode string
	charMappings map[uint32]string

	// Range mappings: consecutive codes to consecutive code points
	rangeMappings []CMapRange
}

// CMapRange maps StartCode..EndCode onto StartUnicode and the code points
// following it.
type CMapRange struct {
	StartCode    uint32
	EndCode      uint32
	StartUnicode []rune
}

// NewCMap creates an empty CMap.
func NewCMap() *CMap {
	return &CMap{
		charMappings: make(map[uint32]string),
	}
}

// ParseCMap parses the decoded bytes of a ToUnicode stream. It fails if the
// data holds no mappings at all.
func ParseCMap(data []byte) (*CMap, error) {
	cm, err := parseCMapData(data)
	if err != nil {
		return nil, err
	}
	if cm.Len() == 0 {
		return nil, ErrEmptyCMap
	}
	return cm, nil
}

// parseCMapData scans every bfchar and bfrange section of data.
func parseCMapData(data []byte) (*CMap, error) {
	cm := NewCMap()
	content := string(data)

	for _, section := range sections(content, "beginbfchar", "endbfchar") {
		if err := cm.parseBfCharSection(section); err != nil {
			return nil, err
		}
	}
	for _, section := range sections(content, "beginbfrange", "endbfrange") {
		if err := cm.parseBfRangeSection(section); err != nil {
			return nil, err
		}
	}

	return cm, nil
}

// sections returns the text between each begin/end keyword pair.
func sections(content, begin, end string) []string {
	var out []string
	start := 0
	for {
		beginIdx := strings.Index(content[start:], begin)
		if beginIdx == -1 {
			break
		}
		beginIdx += start + len(begin)

		endIdx := strings.Index(content[beginIdx:], end)
		if endIdx == -1 {
			break
		}
		endIdx += beginIdx

		out = append(out, content[beginIdx:endIdx])
		start = endIdx + len(end)
	}
	return out
}

// parseBfCharSection reads "<src> <dst>" pairs. Pairs may share a line.
func (cm *CMap) parseBfCharSection(section string) error {
	tokens := cmapTokens(section)
	for i := 0; i+1 < len(tokens); i += 2 {
		src, err := hexCode(tokens[i])
		if err != nil {
			return fmt.Errorf("bfchar source %q: %w", tokens[i], err)
		}
		dst, err := hexText(tokens[i+1])
		if err != nil {
			// Names as destinations (/space) appear in broken producers
			continue
		}
		cm.charMappings[src] = string(dst)
	}
	return nil
}

// parseBfRangeSection reads "<lo> <hi> <dst>" and "<lo> <hi> [<d1> <d2> ...]".
func (cm *CMap) parseBfRangeSection(section string) error {
	tokens := cmapTokens(section)
	for i := 0; i+2 < len(tokens); {
		lo, err := hexCode(tokens[i])
		if err != nil {
			return fmt.Errorf("bfrange start %q: %w", tokens[i], err)
		}
		hi, err := hexCode(tokens[i+1])
		if err != nil {
			return fmt.Errorf("bfrange end %q: %w", tokens[i+1], err)
		}
		i += 2

		if tokens[i] == "[" {
			i++
			code := lo
			for i < len(tokens) && tokens[i] != "]" {
				if dst, err := hexText(tokens[i]); err == nil && code <= hi {
					cm.charMappings[code] = string(dst)
				}
				code++
				i++
			}
			i++ // skip "]"
			continue
		}

		dst, err := hexText(tokens[i])
		i++
		if err != nil || len(dst) == 0 || hi < lo {
			continue
		}
		cm.rangeMappings = append(cm.rangeMappings, CMapRange{
			StartCode:    lo,
			EndCode:      hi,
			StartUnicode: dst,
		})
	}
	return nil
}

// Lookup returns the text mapped to charCode.
func (cm *CMap) Lookup(charCode uint32) (string, bool) {
	if cm == nil {
		return "", false
	}
	if s, ok := cm.charMappings[charCode]; ok {
		return s, true
	}
	for _, r := range cm.rangeMappings {
		if charCode >= r.StartCode && charCode <= r.EndCode {
			// The last code point of the destination is incremented
			// across the range.
			out := make([]rune, len(r.StartUnicode))
			copy(out, r.StartUnicode)
			out[len(out)-1] += rune(charCode - r.StartCode)
			return string(out), true
		}
	}
	return "", false
}

// Len reports the number of single mappings plus range mappings.
func (cm *CMap) Len() int {
	if cm == nil {
		return 0
	}
	return len(cm.charMappings) + len(cm.rangeMappings)
}

// cmapTokens splits a section into hex strings, brackets and bare words.
func cmapTokens(section string) []string {
	var tokens []string
	i := 0
	for i < len(section) {
		c := section[i]
		switch {
		case c == '<':
			end := strings.IndexByte(section[i:], '>')
			if end == -1 {
				return tokens
			}
			tokens = append(tokens, section[i:i+end+1])
			i += end + 1
		case c == '[' || c == ']':
			tokens = append(tokens, string(c))
			i++
		case c == '%':
			for i < len(section) && section[i] != '\n' && section[i] != '\r' {
				i++
			}
		case isCMapSpace(c):
			i++
		default:
			start := i
			for i < len(section) && !isCMapSpace(section[i]) && section[i] != '<' && section[i] != '[' && section[i] != ']' {
				i++
			}
			tokens = append(tokens, section[start:i])
		}
	}
	return tokens
}

func isCMapSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// hexBytes decodes a <...> token, ignoring embedded whitespace.
func hexBytes(token string) ([]byte, error) {
	if len(token) < 2 || token[0] != '<' || token[len(token)-1] != '>' {
		return nil, fmt.Errorf("not a hex string")
	}
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, token[1:len(token)-1])
	if len(digits)%2 != 0 {
		digits += "0"
	}
	return hex.DecodeString(digits)
}

// hexCode decodes a source code of one to four bytes.
func hexCode(token string) (uint32, error) {
	b, err := hexBytes(token)
	if err != nil {
		return 0, err
	}
	if len(b) == 0 || len(b) > 4 {
		return 0, fmt.Errorf("code length %d", len(b))
	}
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v, nil
}

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// hexText decodes a destination string. Destinations are UTF-16BE; a
// single byte is taken as a Latin-1 code point.
func hexText(token string) ([]rune, error) {
	b, err := hexBytes(token)
	if err != nil {
		return nil, err
	}
	if len(b) == 1 {
		return []rune{rune(b[0])}, nil
	}
	s, err := utf16be.NewDecoder().Bytes(b)
	if err != nil {
		return nil, err
	}
	return []rune(string(s)), nil
}
