package textstate

import "github.com/tsawler/pdftitle/font"

// State is the text state of one page: the selected font and size, the
// leading, and the vertical offset of the current baseline. MaxFontSize is
// the largest size selected anywhere on the page so far and survives BT.
type State struct {
	Font     *font.Info
	FontSize float64
	Leading  float64
	Y        float64

	MaxFontSize float64

	// ResetFont makes BeginText also forget the selected font.
	ResetFont bool
}

// New returns the state at the start of a page.
func New() *State {
	return &State{Font: font.RawBytes}
}

// BeginText resets size, leading and position (BT operator). The font stays
// selected unless ResetFont is set.
func (s *State) BeginText() {
	s.FontSize = 0
	s.Leading = 0
	s.Y = 0
	if s.ResetFont {
		s.Font = font.RawBytes
	}
}

// EndText ends a text object (ET operator). It leaves the state unchanged.
func (s *State) EndText() {}

// SetLeading sets the leading (TL operator)
func (s *State) SetLeading(leading float64) {
	s.Leading = leading
}

// SetFont selects a font and size (Tf operator, or gs with a /Font entry).
// A nil info selects raw byte decoding.
func (s *State) SetFont(info *font.Info, size float64) {
	if info == nil {
		info = font.RawBytes
	}
	s.Font = info
	s.FontSize = size
	if size > s.MaxFontSize {
		s.MaxFontSize = size
	}
}

// TranslateText moves to the start of the next line offset by (tx, ty)
// (Td operator). Only the vertical offset is tracked.
func (s *State) TranslateText(tx, ty float64) {
	if ty != 0 {
		s.Y += ty
	}
}

// TranslateTextSetLeading sets the leading to -ty and then moves like
// TranslateText (TD operator).
func (s *State) TranslateTextSetLeading(tx, ty float64) {
	s.SetLeading(-ty)
	s.TranslateText(tx, ty)
}

// SetTextMatrix sets the text matrix (Tm operator). The baseline becomes
// the vertical translation f.
func (s *State) SetTextMatrix(a, b, c, d, e, f float64) {
	s.Y = f
}

// NextLine moves to the next line (T* operator)
func (s *State) NextLine() {
	s.TranslateText(0, -s.Leading)
}
