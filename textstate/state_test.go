package textstate

import (
	"testing"

	"github.com/tsawler/pdftitle/font"
)

func TestNew(t *testing.T) {
	s := New()
	if s.Font != font.RawBytes {
		t.Error("expected a new state to decode raw bytes")
	}
	if s.FontSize != 0 || s.Leading != 0 || s.Y != 0 || s.MaxFontSize != 0 {
		t.Errorf("expected zero state, got %+v", s)
	}
}

// TestBeginText tests the BT reset
func TestBeginText(t *testing.T) {
	info := font.NewDifferenceMap("F1", font.WinAnsiEncoding, nil)

	tests := []struct {
		name      string
		resetFont bool
		wantFont  *font.Info
	}{
		{"font carries over", false, info},
		{"font reset", true, font.RawBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.ResetFont = tt.resetFont
			s.SetFont(info, 18)
			s.SetLeading(20)
			s.SetTextMatrix(1, 0, 0, 1, 0, 500)

			s.BeginText()

			if s.FontSize != 0 || s.Leading != 0 || s.Y != 0 {
				t.Errorf("expected size, leading and y reset, got %+v", s)
			}
			if s.Font != tt.wantFont {
				t.Errorf("font = %q, want %q", s.Font.Name(), tt.wantFont.Name())
			}
			if s.MaxFontSize != 18 {
				t.Errorf("expected max font size to survive BT, got %v", s.MaxFontSize)
			}
		})
	}
}

func TestSetFontTracksMaximum(t *testing.T) {
	s := New()
	sizes := []float64{12, 24, 18, -30, 24}
	for _, size := range sizes {
		s.SetFont(nil, size)
	}
	if s.MaxFontSize != 24 {
		t.Errorf("MaxFontSize = %v, want 24", s.MaxFontSize)
	}
	if s.FontSize != 24 {
		t.Errorf("FontSize = %v, want 24", s.FontSize)
	}
	if s.Font != font.RawBytes {
		t.Error("nil font should select raw bytes")
	}
}

// TestBaselineTracking tests Td, TD, Tm and T*
func TestBaselineTracking(t *testing.T) {
	tests := []struct {
		name  string
		apply func(s *State)
		wantY float64
	}{
		{
			name:  "Tm sets absolute position",
			apply: func(s *State) { s.SetTextMatrix(1, 0, 0, 1, 72, 100) },
			wantY: 100,
		},
		{
			name: "T* applies negative leading",
			apply: func(s *State) {
				s.SetTextMatrix(1, 0, 0, 1, 0, 100)
				s.SetLeading(12)
				s.NextLine()
			},
			wantY: 88,
		},
		{
			name: "Td is cumulative",
			apply: func(s *State) {
				s.TranslateText(10, 50)
				s.TranslateText(10, -20)
			},
			wantY: 30,
		},
		{
			name: "Td with zero dy leaves y",
			apply: func(s *State) {
				s.SetTextMatrix(1, 0, 0, 1, 0, 40)
				s.TranslateText(100, 0)
			},
			wantY: 40,
		},
		{
			name: "Tm is not cumulative",
			apply: func(s *State) {
				s.SetTextMatrix(1, 0, 0, 1, 0, 40)
				s.SetTextMatrix(1, 0, 0, 1, 0, 60)
			},
			wantY: 60,
		},
		{
			name: "TD sets leading for T*",
			apply: func(s *State) {
				s.TranslateTextSetLeading(0, -14)
				s.NextLine()
			},
			wantY: -28,
		},
		{
			name: "T* without leading",
			apply: func(s *State) {
				s.SetTextMatrix(1, 0, 0, 1, 0, 7)
				s.NextLine()
			},
			wantY: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.apply(s)
			if s.Y != tt.wantY {
				t.Errorf("Y = %v, want %v", s.Y, tt.wantY)
			}
		})
	}
}

func TestTranslateTextSetLeading(t *testing.T) {
	s := New()
	s.TranslateTextSetLeading(5, -16)
	if s.Leading != 16 {
		t.Errorf("Leading = %v, want 16", s.Leading)
	}
	if s.Y != -16 {
		t.Errorf("Y = %v, want -16", s.Y)
	}
}

func TestEndTextKeepsState(t *testing.T) {
	s := New()
	s.SetFont(nil, 10)
	s.SetTextMatrix(1, 0, 0, 1, 0, 30)
	before := *s
	s.EndText()
	if *s != before {
		t.Errorf("EndText changed state: %+v -> %+v", before, *s)
	}
}
