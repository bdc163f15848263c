// Package contentstream parses PDF content streams.
//
// A content stream is a sequence of operands followed by the operator that
// consumes them. [Parser] produces the raw [Instruction] list; [Decode]
// goes one step further and returns typed [Operation] values for the text
// operators:
//
//	ops, err := contentstream.Decode(streamData)
//	for _, op := range ops {
//	    switch op := op.(type) {
//	    case contentstream.SetFont:
//	        fmt.Println(op.Name, op.Size)
//	    case contentstream.ShowText:
//	        fmt.Printf("% X\n", op.Data)
//	    }
//	}
//
// # Text Operators
//
//   - BT, ET - Begin/end text object
//   - Tf - Set font and size
//   - TL - Set leading
//   - Tm - Set text matrix
//   - Td, TD, T* - Move text position
//   - Tj, TJ, ', " - Show text
//   - gs - Set graphics state, which may select a font
//
// Everything else, including path and image operators, is returned as
// [Other]. Inline images (BI ... ID ... EI) are skipped over and reported
// as a single BI instruction carrying the image parameters.
//
// # Operand Types
//
// Operands are [Int], [Real], [String], [Name], [Bool], [Null], [Array]
// and [Dict]. Strings hold raw bytes; turning them into text needs the
// font that is current when they are shown.
package contentstream
