package document

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/pdftitle/font"
)

var (
	// ErrPasswordRequired is returned by Load for encrypted files that
	// cannot be opened without a password.
	ErrPasswordRequired = errors.New("document requires a password")

	// ErrPageOutOfRange is returned for page numbers outside the document.
	ErrPageOutOfRange = errors.New("page number out of range")
)

var disableConfigDir sync.Once

// Document is a parsed PDF file. Pages are built on demand.
type Document struct {
	path string
	ctx  *model.Context
}

// Page holds what the text interpreter needs from one page: its content
// stream and the font resources it can select.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Content is the page's decoded content. Multiple streams are
	// concatenated with a newline between them.
	Content []byte

	// HasContent reports whether the page has a /Contents entry at all.
	HasContent bool

	// Fonts maps /Font resource names to their descriptions.
	Fonts map[string]font.Resource

	// GraphicsStates maps /ExtGState resource names to the font they set.
	// States without a /Font entry are left out.
	GraphicsStates map[string]font.GraphicsStateFont

	// ResourceErrors lists fonts and graphics states that could not be
	// resolved and were left out.
	ResourceErrors []error
}

// Load reads and parses the PDF at path.
func Load(path string) (*Document, error) {
	// pdfcpu otherwise creates a configuration directory under the user's
	// home on first use.
	disableConfigDir.Do(api.DisableConfigDir)

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		if isPasswordError(err) {
			return nil, fmt.Errorf("%w: %v", ErrPasswordRequired, err)
		}
		return nil, err
	}
	return &Document{path: path, ctx: ctx}, nil
}

// isPasswordError reports whether a pdfcpu read error was caused by a
// missing or wrong password.
func isPasswordError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "password")
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// IsEncrypted reports whether the file's trailer carries an /Encrypt
// dictionary.
func (d *Document) IsEncrypted() bool {
	return d.ctx.Encrypt != nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Page builds the page with the given 1-based number.
func (d *Document) Page(number int) (*Page, error) {
	if number < 1 || number > d.ctx.PageCount {
		return nil, fmt.Errorf("page %d of %d: %w", number, d.ctx.PageCount, ErrPageOutOfRange)
	}

	// false keeps pdfcpu from parsing the content stream; inherited
	// /Resources are still reported.
	pageDict, _, inherited, err := d.ctx.PageDict(number, false)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}
	if pageDict == nil {
		return nil, fmt.Errorf("page %d: %w", number, ErrPageOutOfRange)
	}

	page := &Page{
		Number:         number,
		Fonts:          make(map[string]font.Resource),
		GraphicsStates: make(map[string]font.GraphicsStateFont),
	}

	if contents, found := pageDict.Find("Contents"); found && contents != nil {
		page.HasContent = true
		streams, err := d.contentStreams(contents, 0)
		if err != nil {
			return nil, fmt.Errorf("page %d contents: %w", number, err)
		}
		page.Content = joinStreams(streams)
	}

	resources := d.pageResources(pageDict, inherited)
	if resources != nil {
		d.loadResources(page, resources)
	}

	return page, nil
}

// Pages yields up to limit pages in order. A limit of zero or less yields
// every page. A page that cannot be built is yielded with its error and
// iteration continues.
func (d *Document) Pages(limit int) iter.Seq2[*Page, error] {
	n := d.ctx.PageCount
	if limit > 0 && limit < n {
		n = limit
	}
	return func(yield func(*Page, error) bool) {
		for i := 1; i <= n; i++ {
			page, err := d.Page(i)
			if err != nil {
				page = &Page{Number: i}
			}
			if !yield(page, err) {
				return
			}
		}
	}
}

// pageResources returns the page's resource dictionary, taking inherited
// resources into account.
func (d *Document) pageResources(pageDict types.Dict, inherited *model.InheritedPageAttrs) types.Dict {
	if obj, found := pageDict.Find("Resources"); found {
		if dict, err := d.dict(obj); err == nil && dict != nil {
			return dict
		}
	}
	if inherited != nil && inherited.Resources != nil {
		return inherited.Resources
	}
	return nil
}

const maxContentDepth = 8

// contentStreams collects the decoded bytes of a /Contents entry, which may
// be a stream or an array of streams.
func (d *Document) contentStreams(obj types.Object, depth int) ([][]byte, error) {
	if depth > maxContentDepth {
		return nil, errors.New("contents nested too deeply")
	}

	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case types.StreamDict:
		data, err := decodeStream(o)
		if err != nil {
			return nil, err
		}
		return [][]byte{data}, nil

	case types.Array:
		var streams [][]byte
		for i, item := range o {
			s, err := d.contentStreams(item, depth+1)
			if err != nil {
				return nil, fmt.Errorf("stream %d: %w", i, err)
			}
			streams = append(streams, s...)
		}
		return streams, nil

	case nil:
		return nil, nil
	}

	return nil, fmt.Errorf("unexpected contents type %T", obj)
}

func decodeStream(sd types.StreamDict) ([]byte, error) {
	if len(sd.Content) == 0 && len(sd.Raw) > 0 {
		if err := sd.Decode(); err != nil {
			return nil, fmt.Errorf("decode stream: %w", err)
		}
	}
	return sd.Content, nil
}

func joinStreams(streams [][]byte) []byte {
	var n int
	for _, s := range streams {
		n += len(s) + 1
	}
	out := make([]byte, 0, n)
	for i, s := range streams {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, s...)
	}
	return out
}

// dict dereferences obj and returns it as a dictionary. A null object
// yields a nil dictionary.
func (d *Document) dict(obj types.Object) (types.Dict, error) {
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case types.Dict:
		return o, nil
	case types.StreamDict:
		return o.Dict, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("expected dictionary, got %T", obj)
}
