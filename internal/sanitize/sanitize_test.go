package sanitize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Analysis of Blood Flow", "Analysis of Blood Flow"},
		{"separators", "Input/Output: a survey", "InputOutput a survey"},
		{"windows characters", `What? <Really> "yes" a|b*c\d`, "What Really yes abcd"},
		{"control characters", "Tab\there\x00\u0085", "Tabhere"},
		{"dots only", "...", ""},
		{"reserved device name", "CON", ""},
		{"reserved device name with extension", "lpt1.txt", ""},
		{"device name as a prefix is fine", "Console Games", "Console Games"},
		{"trailing dots and spaces", "Title. . ", "Title"},
		{"decomposed accents are composed", "Cafe\u0301", "Caf\u00e9"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.input); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilenameTruncates(t *testing.T) {
	long := strings.Repeat("é", 200) // 400 bytes
	got := Filename(long)
	if len(got) > MaxFilenameBytes {
		t.Errorf("len = %d, want at most %d", len(got), MaxFilenameBytes)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a character")
	}
	if len(got) != 254 {
		t.Errorf("len = %d, want 254", len(got))
	}
}
