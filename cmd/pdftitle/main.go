// Command pdftitle prints the title of PDF files: the text drawn at the
// largest font size on their first pages.
//
// Usage:
//
//	pdftitle [flags] file.pdf...
//
// Settings come from built-in defaults, an optional YAML file (-config),
// PDFTITLE_* environment variables (also read from a .env file) and flags,
// in increasing order of precedence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdftitle"
	"github.com/tsawler/pdftitle/internal/config"
	"github.com/tsawler/pdftitle/internal/sanitize"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// result is the outcome for one file.
type result struct {
	Path     string   `json:"path"`
	Title    string   `json:"title"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defaults := config.Default()

	fs := flag.NewFlagSet("pdftitle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: pdftitle [flags] file.pdf...")
		fs.PrintDefaults()
	}

	var (
		configPath = fs.String("config", "", "YAML configuration file")
		envFile    = fs.String("env", ".env", "dotenv file with PDFTITLE_* variables; ignored if missing")
		pages      = fs.Int("pages", defaults.Pages, "number of leading pages to search (0 = all)")
		format     = fs.String("format", defaults.Format, "output format: text, json or html")
		filename   = fs.Bool("filename", defaults.Filename, "make titles safe to use as file names")
		workers    = fs.Int("workers", defaults.Workers, "pages interpreted at once")
		strict     = fs.Bool("strict", defaults.Strict, "skip a page when any of its strings cannot be decoded")
		resetFont  = fs.Bool("reset-font", defaults.ResetFont, "forget the selected font at each BT operator")
		logLevel   = fs.String("log-level", defaults.LogLevel, "log level: debug, info, warn or error")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			fmt.Fprintf(stderr, "pdftitle: %v\n", err)
			return 2
		}
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		fmt.Fprintf(stderr, "pdftitle: %v\n", err)
		return 2
	}

	// Flags given on the command line win over every other source.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pages":
			cfg.Pages = *pages
		case "format":
			cfg.Format = *format
		case "filename":
			cfg.Filename = *filename
		case "workers":
			cfg.Workers = *workers
		case "strict":
			cfg.Strict = *strict
		case "reset-font":
			cfg.ResetFont = *resetFont
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "pdftitle: %v\n", err)
		return 2
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	base := pdftitle.New().
		Pages(cfg.Pages).
		Concurrency(cfg.Workers).
		Logger(logger)
	if cfg.Strict {
		base = base.StrictStrings()
	}
	if cfg.ResetFont {
		base = base.ResetFontOnBeginText()
	}

	results := make([]result, 0, fs.NArg())
	failed := false
	for _, path := range fs.Args() {
		r := extract(ctx, base, path, cfg.Filename)
		if r.Error != "" {
			failed = true
			logger.Error("unable to extract title", "path", path, "error", r.Error)
		}
		results = append(results, r)
		if ctx.Err() != nil {
			break
		}
	}

	if err := write(stdout, cfg.Format, results); err != nil {
		fmt.Fprintf(stderr, "pdftitle: %v\n", err)
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

// extract finds the title of one file using the settings of base.
func extract(ctx context.Context, base *pdftitle.Extractor, path string, safeName bool) result {
	r := result{Path: path}

	title, warnings, err := base.WithFile(path).TitleContext(ctx)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, w.String())
	}

	title = norm.NFC.String(title)
	if safeName {
		title = sanitize.Filename(title)
	}
	r.Title = title
	return r
}
