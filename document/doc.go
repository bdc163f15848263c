// Package document opens PDF files and prepares their pages for text
// interpretation.
//
// Parsing, cross-reference handling, object resolution and stream filters
// are delegated to pdfcpu. This package turns a page into a [Page]: the
// concatenated content stream plus plain descriptions of the fonts it can
// select, either directly through /Font resources or through the /Font
// entry of an /ExtGState resource.
//
//	doc, err := document.Load("paper.pdf")
//	if err != nil {
//	    return err
//	}
//	for page, err := range doc.Pages(2) {
//	    if err != nil {
//	        continue
//	    }
//	    fmt.Println(page.Number, len(page.Content), len(page.Fonts))
//	}
package document
