// Package textstate tracks the part of the PDF text state that title
// extraction needs.
//
// Only the vertical baseline is followed. Horizontal movement, the
// current transformation matrix and the text rise are ignored, so Y is an
// offset in unscaled text space rather than a page coordinate:
//
//	s := textstate.New()
//	s.BeginText()                    // BT
//	s.SetFont(info, 24)              // /F1 24 Tf
//	s.SetTextMatrix(1, 0, 0, 1, 72, 700) // Tm, Y = 700
//	s.SetLeading(28)                 // TL
//	s.NextLine()                     // T*, Y = 672
//
// Every method is a constant-time update of the State value.
package textstate
