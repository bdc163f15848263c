package pdftitle

import "log/slog"

// DefaultPageLimit is the number of pages searched for a title unless
// Pages says otherwise. Titles are almost always on the first page or, for
// documents with a cover sheet, the second.
const DefaultPageLimit = 2

// extractOptions holds configuration for title extraction.
type extractOptions struct {
	// Number of leading pages to search; zero or less means all pages
	pageLimit int

	// Pages interpreted at once; one or less means sequential
	concurrency int

	// Interpreter behavior
	strictStrings        bool
	resetFontOnBeginText bool

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		pageLimit:   DefaultPageLimit,
		concurrency: 1,
	}
}

// clone returns a copy of the options. All fields are values or shared
// immutable pointers.
func (o extractOptions) clone() extractOptions {
	return o
}

func (o extractOptions) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}
