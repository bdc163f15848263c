// Package pdftest builds small PDF files for tests.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Builder assembles numbered indirect objects and writes them out with a
// valid cross-reference table.
type Builder struct {
	objects []string
}

// Reserve allocates an object number to be filled in later with Set.
func (b *Builder) Reserve() int {
	b.objects = append(b.objects, "null")
	return len(b.objects)
}

// Set replaces the body of object n.
func (b *Builder) Set(n int, body string) {
	b.objects[n-1] = body
}

// Add appends an object and returns its number.
func (b *Builder) Add(body string) int {
	b.objects = append(b.objects, body)
	return len(b.objects)
}

// AddStream appends a stream object. dict holds extra dictionary entries
// without the enclosing << >>.
func (b *Builder) AddStream(dict string, data []byte) int {
	return b.Add(fmt.Sprintf("<< %s /Length %d >>\nstream\n%s\nendstream", dict, len(data), data))
}

// AddFlateStream appends a FlateDecode-compressed stream object.
func (b *Builder) AddFlateStream(dict string, data []byte) int {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return b.AddStream(dict+" /Filter /FlateDecode", buf.Bytes())
}

// Ref formats an indirect reference to object n.
func Ref(n int) string {
	return fmt.Sprintf("%d 0 R", n)
}

// Bytes serialises the file with root as the document catalog and extra
// appended to the trailer dictionary.
func (b *Builder) Bytes(root int, extra string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(b.objects))
	for i, body := range b.objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(b.objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %s %s >>\nstartxref\n%d\n%%%%EOF\n",
		len(b.objects)+1, Ref(root), extra, xref)
	return buf.Bytes()
}

// Page describes one page for Document.
type Page struct {
	// Content is the page's content stream. Pages with no Content and no
	// Contents have no /Contents entry.
	Content string

	// Contents splits the content over several streams.
	Contents []string

	// Resources is the body of the page's /Resources dictionary, e.g.
	// "/Font << /F1 4 0 R >>". Empty means the page inherits.
	Resources string
}

// Helvetica is the object number of the shared /F1 font in files built by
// Document.
const Helvetica = 3

// Document builds a file with the given pages. Every page can use /F1, a
// WinAnsi-encoded Helvetica inherited from the page tree, unless it sets
// its own resources.
func Document(pages ...Page) []byte {
	var b Builder
	catalog := b.Reserve()
	tree := b.Reserve()
	helvetica := b.Add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var kids []string
	for _, p := range pages {
		entries := fmt.Sprintf("/Type /Page /Parent %s", Ref(tree))
		switch {
		case len(p.Contents) > 0:
			var refs []string
			for _, c := range p.Contents {
				refs = append(refs, Ref(b.AddStream("", []byte(c))))
			}
			entries += fmt.Sprintf(" /Contents [%s]", strings.Join(refs, " "))
		case p.Content != "":
			entries += " /Contents " + Ref(b.AddStream("", []byte(p.Content)))
		}
		if p.Resources != "" {
			entries += " /Resources << " + p.Resources + " >>"
		}
		kids = append(kids, Ref(b.Add("<< "+entries+" >>")))
	}

	b.Set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %s >>", Ref(tree)))
	b.Set(tree, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] /Resources << /Font << /F1 %s >> >> >>",
		strings.Join(kids, " "), len(kids), Ref(helvetica)))
	return b.Bytes(catalog, "")
}

// WriteFile writes data to a file in a per-test temporary directory and
// returns its path.
func WriteFile(tb testing.TB, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "test.pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write test PDF: %v", err)
	}
	return path
}

// Encrypt writes an AES-256 encrypted copy of the file at path and returns
// the copy's path. An empty userPW gives a file that opens without a
// password.
func Encrypt(tb testing.TB, path, userPW string) string {
	tb.Helper()
	api.DisableConfigDir()
	out := filepath.Join(tb.TempDir(), "encrypted.pdf")
	conf := model.NewAESConfiguration(userPW, "owner", 256)
	if err := api.EncryptFile(path, out, conf); err != nil {
		tb.Fatalf("encrypt test PDF: %v", err)
	}
	return out
}
