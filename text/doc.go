// Package text interprets PDF content streams to find the text drawn at the
// largest font size on a page.
//
// Only the parts of the graphics state that matter for this are tracked:
// the selected font and size, the leading, and the vertical position of the
// baseline. Every show-text operator (Tj, TJ, ' and ") produces one
// [PositionedText]. When the page is done, the runs drawn at the page's
// largest size are kept and the rest are discarded.
//
//	result, err := text.InterpretPage(page, text.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.MaxFontSize, result.Text())
//
// # Strings that cannot be decoded
//
// A string shown without a usable font is decoded as UTF-16BE (when it
// starts with a byte order mark) or UTF-8. If that fails, the string is
// dropped and reported in [PageResult.Skipped]. Set Options.StrictStrings
// to fail the whole page instead.
//
// # TJ spacing
//
// Numeric elements of a TJ array are kerning adjustments. An adjustment
// below -100 thousandths of text space becomes a single space; anything
// else is ignored.
package text
