package pdftitle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pdftitle/document"
	"github.com/tsawler/pdftitle/text"
)

// Extractor provides a fluent interface for finding the title of a PDF.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	doc      *document.Document

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of its options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		doc:      e.doc,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages limits the search to the first n pages. Zero or a negative n
// searches every page. The default is DefaultPageLimit.
//
// Example:
//
//	title, _, err := pdftitle.Open("paper.pdf").Pages(1).Title()
func (e *Extractor) Pages(n int) *Extractor {
	newExt := e.clone()
	newExt.options.pageLimit = n
	return newExt
}

// WithFile returns an Extractor with the same settings for another file.
// This is useful for applying one configuration to many files.
//
// Example:
//
//	base := pdftitle.New().Pages(3).Logger(logger)
//	for _, path := range paths {
//	    title, _, err := base.WithFile(path).Title()
//	    // ...
//	}
func (e *Extractor) WithFile(filename string) *Extractor {
	newExt := e.clone()
	newExt.filename = filename
	newExt.doc = nil
	newExt.err = nil
	return newExt
}

// Logger sets the logger that receives page and font warnings. The default
// is slog.Default().
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// Concurrency interprets up to n pages at once. Pages are still read from
// the file one at a time and the result does not depend on n.
//
// Example:
//
//	title, _, err := pdftitle.Open("book.pdf").Pages(0).Concurrency(4).Title()
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = 1
	}
	newExt.options.concurrency = n
	return newExt
}

// StrictStrings makes a single undecodable string skip its whole page
// instead of only that string.
func (e *Extractor) StrictStrings() *Extractor {
	newExt := e.clone()
	newExt.options.strictStrings = true
	return newExt
}

// ResetFontOnBeginText makes each BT operator forget the selected font, so
// text shown before the next Tf decodes as raw bytes.
func (e *Extractor) ResetFontOnBeginText() *Extractor {
	newExt := e.clone()
	newExt.options.resetFontOnBeginText = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Title returns the text drawn at the largest font size in the searched
// pages. When several pages reach the same size the earliest wins. Within
// that page, all runs at that size are joined with single spaces.
//
// Problems with individual pages, fonts or strings never fail the call;
// they are returned as warnings. Only a document that cannot be loaded or
// is encrypted returns an error. A document without any text yields an
// empty title.
//
// Example:
//
//	title, warnings, err := pdftitle.Open("paper.pdf").Title()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdftitle.FormatWarnings(warnings))
//	}
func (e *Extractor) Title() (string, []Warning, error) {
	return e.TitleContext(context.Background())
}

// TitleContext is like Title but stops between pages once ctx is done.
func (e *Extractor) TitleContext(ctx context.Context) (string, []Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	doc, err := e.document()
	if err != nil {
		return "", nil, err
	}

	outcomes, err := e.interpretPages(ctx, doc)
	if err != nil {
		return "", nil, err
	}

	logger := e.options.log()
	var (
		sel      selection
		warnings []Warning
	)
	for _, o := range outcomes {
		warnings = append(warnings, o.warnings(logger)...)
		if o.err == nil {
			sel.consider(o.page, o.result)
		}
	}

	logger.Debug("selected title",
		"path", doc.Path(),
		"page", sel.bestPage,
		"font_size", sel.bestFontSize,
		"title", sel.bestText)

	return sel.bestText, warnings, nil
}

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	doc, err := e.document()
	if err != nil {
		return 0, err
	}
	return doc.PageCount(), nil
}

// document returns the loaded document, loading it on first use.
func (e *Extractor) document() (*document.Document, error) {
	if e.doc != nil {
		return e.doc, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	doc, err := document.Load(e.filename)
	if err != nil {
		if errors.Is(err, document.ErrPasswordRequired) {
			return nil, &EncryptedError{Path: e.filename}
		}
		return nil, &LoadError{Path: e.filename, Err: err}
	}
	if doc.IsEncrypted() {
		return nil, &EncryptedError{Path: e.filename}
	}
	return doc, nil
}

// pageOutcome is the interpretation of one page.
type pageOutcome struct {
	page   int
	result *text.PageResult
	err    error
}

// warnings logs and returns the problems recorded for the page.
func (o pageOutcome) warnings(logger *slog.Logger) []Warning {
	var out []Warning
	add := func(msg string, err error) {
		logger.Warn(msg, "page", o.page, "error", err)
		out = append(out, Warning{Page: o.page, Message: msg, Err: err})
	}

	if o.err != nil {
		add("page skipped", o.err)
		return out
	}
	for _, err := range o.result.FontErrors {
		add("font unavailable", err)
	}
	for _, err := range o.result.Skipped {
		add("string skipped", err)
	}
	return out
}

// interpretPages interprets the searched pages and returns their outcomes
// in page order.
func (e *Extractor) interpretPages(ctx context.Context, doc *document.Document) ([]pageOutcome, error) {
	opts := text.Options{
		StrictStrings:        e.options.strictStrings,
		ResetFontOnBeginText: e.options.resetFontOnBeginText,
		Logger:               e.options.log(),
	}

	var outcomes []pageOutcome

	if e.options.concurrency <= 1 {
		for page, err := range doc.Pages(e.options.pageLimit) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			outcomes = append(outcomes, interpret(page, err, opts))
		}
		return outcomes, nil
	}

	// Reading stays sequential; only interpretation fans out.
	type loaded struct {
		page *document.Page
		err  error
	}
	var pages []loaded
	for page, err := range doc.Pages(e.options.pageLimit) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		pages = append(pages, loaded{page, err})
	}

	outcomes = make([]pageOutcome, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.concurrency)

	for i, p := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = interpret(p.page, p.err, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// interpret runs the text interpreter on a page that was read with loadErr.
func interpret(page *document.Page, loadErr error, opts text.Options) pageOutcome {
	o := pageOutcome{page: page.Number}
	if loadErr != nil {
		o.err = loadErr
		return o
	}
	o.result, o.err = text.InterpretPage(page, opts)
	return o
}
