// Package font turns the bytes of PDF text-showing operators into text.
//
// Each font resource on a page gets one decoding strategy, an [Info]:
//
//   - [KindUnicodeMap] when the font carries a ToUnicode CMap that parses
//   - [KindDifferenceMap] when the font has a simple /Encoding: one of the
//     base encodings (or none) overlaid with its /Differences
//   - [KindRawBytes] when no font could be resolved; strings are read as
//     UTF-16BE after a byte order mark, or as UTF-8
//
// Strategies are built from a [Resource], a plain description of the font
// dictionary prepared by the document layer:
//
//	info, err := font.New(font.Resource{
//	    Name:     "F1",
//	    Encoding: &font.EncodingSpec{BaseEncoding: "WinAnsiEncoding"},
//	})
//	text, err := info.Decode([]byte("Hello"))
//
// # Encodings
//
// The four base encodings are [StandardEncoding], [SymbolEncoding],
// [WinAnsiEncoding] and [MacRomanEncoding]. Any other /BaseEncoding name
// fails with [ErrUnsupportedEncoding].
//
// # Page cache
//
// A [Cache] holds the strategies of one page. Lookups of unknown names
// return [RawBytes] rather than failing.
package font
