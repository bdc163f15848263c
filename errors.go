package pdftitle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLoad is matched by every *LoadError.
	ErrLoad = errors.New("unable to load document")

	// ErrEncrypted is matched by every *EncryptedError.
	ErrEncrypted = errors.New("document is encrypted")

	// ErrNoDocument is the cause of the LoadError returned for a nil
	// document passed to FromDocument.
	ErrNoDocument = errors.New("no document")
)

// LoadError is returned when a file cannot be read or parsed as a PDF.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrLoad, e.Err)
}

// Unwrap exposes both ErrLoad and the underlying cause to errors.Is.
func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

// EncryptedError is returned for encrypted documents. No text is extracted
// from them.
type EncryptedError struct {
	Path string
}

func (e *EncryptedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, ErrEncrypted)
}

func (e *EncryptedError) Unwrap() error {
	return ErrEncrypted
}

// Warning is a non-fatal problem found while extracting a title. Page is
// the 1-based page number, or 0 when the problem is not tied to a page.
type Warning struct {
	Page    int
	Message string
	Err     error
}

func (w Warning) String() string {
	var b strings.Builder
	if w.Page > 0 {
		fmt.Fprintf(&b, "page %d: ", w.Page)
	}
	b.WriteString(w.Message)
	if w.Err != nil {
		fmt.Fprintf(&b, ": %v", w.Err)
	}
	return b.String()
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
