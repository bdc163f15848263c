package font

import (
	"errors"
	"testing"
)

// TestWinAnsiEncoding tests Windows CP1252 based encoding
func TestWinAnsiEncoding(t *testing.T) {
	enc := WinAnsiEncoding

	tests := []struct {
		name     string
		input    byte
		expected rune
	}{
		{"space", 0x20, ' '},
		{"uppercase A", 0x41, 'A'},
		{"lowercase a", 0x61, 'a'},
		{"euro sign", 0x80, '€'},
		{"smart quote left", 0x91, '‘'},
		{"smart quote right", 0x92, '’'},
		{"lowercase e-acute", 0xE9, 'é'},
		{"lowercase c-cedilla", 0xE7, 'ç'},
		{"uppercase A-grave", 0xC0, 'À'},
		{"non-breaking space is a space", 0xA0, ' '},
		{"soft hyphen is a hyphen", 0xAD, '-'},
		{"hole in code page", 0x81, 0},
		{"control code", 0x0A, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.input)
			if got != tt.expected {
				t.Errorf("WinAnsiEncoding.Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
			}
		})
	}
}

// TestMacRomanEncoding tests Mac Roman encoding
func TestMacRomanEncoding(t *testing.T) {
	enc := MacRomanEncoding

	tests := []struct {
		name     string
		input    byte
		expected rune
	}{
		{"uppercase A", 0x41, 'A'},
		{"A-dieresis", 0x80, 'Ä'},
		{"e-acute", 0x8E, 'é'},
		{"bullet", 0xA5, '•'},
		{"en dash", 0xD0, '–'},
		{"em dash", 0xD1, '—'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.input)
			if got != tt.expected {
				t.Errorf("MacRomanEncoding.Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
			}
		})
	}
}

// TestStandardEncoding tests Adobe StandardEncoding
func TestStandardEncoding(t *testing.T) {
	enc := StandardEncoding

	tests := []struct {
		name     string
		input    byte
		expected rune
	}{
		{"uppercase A", 0x41, 'A'},
		{"quoteright", 0x27, '’'},
		{"quoteleft", 0x60, '‘'},
		{"fi ligature", 0xAE, 'ﬁ'},
		{"emdash", 0xD0, '—'},
		{"unmapped", 0x80, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.input)
			if got != tt.expected {
				t.Errorf("StandardEncoding.Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSymbolEncoding(t *testing.T) {
	if r, ok := SymbolEncoding.Lookup(0x61); !ok || r != 'α' {
		t.Errorf("SymbolEncoding.Lookup(0x61) = %q, %v, want 'α', true", r, ok)
	}
	if _, ok := SymbolEncoding.Lookup(0x7F); ok {
		t.Error("SymbolEncoding.Lookup(0x7F) should be unmapped")
	}
}

// TestGetEncoding tests the encoding lookup function
func TestGetEncoding(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		expected string
	}{
		{"WinAnsiEncoding", "WinAnsiEncoding", "WinAnsiEncoding"},
		{"MacRomanEncoding", "MacRomanEncoding", "MacRomanEncoding"},
		{"StandardEncoding", "StandardEncoding", "StandardEncoding"},
		{"SymbolEncoding", "SymbolEncoding", "SymbolEncoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := GetEncoding(tt.encoding)
			if err != nil {
				t.Fatalf("GetEncoding(%q) failed: %v", tt.encoding, err)
			}
			if enc.Name() != tt.expected {
				t.Errorf("GetEncoding(%q).Name() = %q, want %q", tt.encoding, enc.Name(), tt.expected)
			}
		})
	}
}

func TestGetEncodingAbsent(t *testing.T) {
	enc, err := GetEncoding("")
	if err != nil {
		t.Fatalf("GetEncoding(\"\") failed: %v", err)
	}
	if enc != nil {
		t.Errorf("expected nil encoding, got %v", enc.Name())
	}
}

func TestGetEncodingUnsupported(t *testing.T) {
	_, err := GetEncoding("PDFDocEncoding")
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}

	var unsupported *UnsupportedEncodingError
	if !errors.As(err, &unsupported) || unsupported.Name != "PDFDocEncoding" {
		t.Errorf("expected UnsupportedEncodingError naming PDFDocEncoding, got %v", err)
	}
}

func TestGlyphToUnicode(t *testing.T) {
	tests := []struct {
		glyph    string
		expected string
		found    bool
	}{
		{"Z", "Z", true},
		{"a", "a", true},
		{"space", " ", true},
		{"eacute", "é", true},
		{"fi", "ﬁ", true},
		{"uni0041", "A", true},
		{"uni00410042", "AB", true},
		{"u1F600", "\U0001F600", true},
		{"a.sc", "a", true},
		{"f_f_i", "ffi", true},
		{"alpha", "α", true},
		{"g123", "", false},
		{"", "", false},
		{"uniD800", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.glyph, func(t *testing.T) {
			got, ok := GlyphToUnicode(tt.glyph)
			if got != tt.expected || ok != tt.found {
				t.Errorf("GlyphToUnicode(%q) = %q, %v, want %q, %v", tt.glyph, got, ok, tt.expected, tt.found)
			}
		})
	}
}
