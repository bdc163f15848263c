// Package pdftitle provides a fluent API for finding the title of a PDF: the
// text drawn at the largest font size on its first pages.
//
// Basic usage:
//
//	title, warnings, err := pdftitle.Open("paper.pdf").Title()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdftitle.FormatWarnings(warnings))
//	}
//
// With options:
//
//	title, _, err := pdftitle.Open("book.pdf").
//	    Pages(5).
//	    Concurrency(4).
//	    Logger(logger).
//	    Title()
//
// For lower-level access, the document, text and font packages are also
// available.
package pdftitle

import (
	"github.com/tsawler/pdftitle/document"
)

// Open returns an Extractor for the PDF at filename. The file is read when a
// terminal operation such as Title is called.
//
// Example:
//
//	title, warnings, err := pdftitle.Open("paper.pdf").Title()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// New returns an Extractor with default settings and no file. Configure it
// and then call WithFile for each document.
func New() *Extractor {
	return &Extractor{options: defaultOptions()}
}

// FromDocument creates an Extractor for an already loaded document. This is
// useful when the same document is queried more than once.
//
// Example:
//
//	doc, err := document.Load("paper.pdf")
//	if err != nil {
//	    // handle error
//	}
//	title, warnings, err := pdftitle.FromDocument(doc).Title()
func FromDocument(doc *document.Document) *Extractor {
	e := &Extractor{options: defaultOptions()}
	switch {
	case doc == nil:
		e.err = &LoadError{Err: ErrNoDocument}
	case doc.IsEncrypted():
		e.err = &EncryptedError{Path: doc.Path()}
	default:
		e.filename = doc.Path()
		e.doc = doc
	}
	return e
}

// ExtractTitle returns the title of the PDF at path, searching its first
// pageLimit pages. Warnings are logged with slog.Default() and otherwise
// discarded.
//
// A pageLimit of zero or less does not mean "no pages": it searches every
// page, the same as Pages(0). Callers that want an empty result for a zero
// limit must check for it themselves.
func ExtractTitle(path string, pageLimit int) (string, error) {
	title, _, err := Open(path).Pages(pageLimit).Title()
	return title, err
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pdftitle.Must(pdftitle.Open("paper.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTitle is a helper that wraps a call to Title() and panics if the
// error is non-nil. It discards warnings and returns just the title.
//
// Example:
//
//	title := pdftitle.MustTitle(pdftitle.Open("paper.pdf").Title())
func MustTitle(title string, _ []Warning, err error) string {
	if err != nil {
		panic(err)
	}
	return title
}
