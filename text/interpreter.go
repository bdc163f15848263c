package text

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/tsawler/pdftitle/contentstream"
	"github.com/tsawler/pdftitle/document"
	"github.com/tsawler/pdftitle/font"
	"github.com/tsawler/pdftitle/textstate"
)

// ErrNoContent is returned for pages without a content stream.
var ErrNoContent = errors.New("page has no content")

// ContentDecodeError reports a content stream that could not be tokenized.
type ContentDecodeError struct {
	Page int
	Err  error
}

func (e *ContentDecodeError) Error() string {
	return fmt.Sprintf("page %d: decode content: %v", e.Page, e.Err)
}

func (e *ContentDecodeError) Unwrap() error {
	return e.Err
}

// StringDecodeError reports a shown string that the current font could not
// decode.
type StringDecodeError struct {
	Operator string
	Font     string
	Err      error
}

func (e *StringDecodeError) Error() string {
	return fmt.Sprintf("%s with font %q: %v", e.Operator, e.Font, e.Err)
}

func (e *StringDecodeError) Unwrap() error {
	return e.Err
}

// spaceThreshold is the TJ adjustment, in thousandths of text space, below
// which a gap is treated as a word break.
const spaceThreshold = -100

// sizeTolerance is how far a run's size may be from the page maximum and
// still count as drawn at the maximum.
const sizeTolerance = 1e-3

// PositionedText is the text drawn by one show-text operator.
type PositionedText struct {
	Text     string
	FontSize float64
	Y        float64
}

// PageResult is what a page contributes to title selection.
type PageResult struct {
	// Runs holds the runs drawn at MaxFontSize, in content stream order.
	Runs []PositionedText

	// MaxFontSize is the largest size selected on the page.
	MaxFontSize float64

	// Skipped lists strings that were dropped because they could not be
	// decoded. It is always empty with Options.StrictStrings.
	Skipped []error

	// FontErrors lists fonts and graphics states that could not be loaded.
	// Text drawn with them decodes as raw bytes.
	FontErrors []error
}

// Text joins the runs with single spaces.
func (r *PageResult) Text() string {
	if r == nil {
		return ""
	}
	parts := make([]string, len(r.Runs))
	for i, run := range r.Runs {
		parts[i] = run.Text
	}
	return strings.Join(parts, " ")
}

// Options controls interpretation.
type Options struct {
	// StrictStrings makes a string that cannot be decoded fail the whole
	// page instead of being dropped.
	StrictStrings bool

	// ResetFontOnBeginText makes BT forget the selected font.
	ResetFontOnBeginText bool

	// Logger receives a debug summary of each interpreted page. Font and
	// string problems are returned in PageResult, not logged. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// InterpretPage decodes the page's content stream and interprets it with
// the page's fonts.
func InterpretPage(page *document.Page, opts Options) (*PageResult, error) {
	if page == nil || !page.HasContent {
		return nil, ErrNoContent
	}

	ops, err := contentstream.Decode(page.Content)
	if err != nil {
		return nil, &ContentDecodeError{Page: page.Number, Err: err}
	}

	cache, fontErrs := font.NewCache(page.Fonts, page.GraphicsStates)

	result, err := InterpretOperations(ops, cache, opts)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page.Number, err)
	}
	result.FontErrors = append(append(result.FontErrors, page.ResourceErrors...), fontErrs...)

	opts.logger().Debug("page interpreted",
		"page", page.Number,
		"operations", len(ops),
		"runs", len(result.Runs),
		"font_size", result.MaxFontSize,
		"skipped", len(result.Skipped))
	return result, nil
}

// InterpretOperations runs ops against a fresh text state and returns the
// runs drawn at the largest font size.
func InterpretOperations(ops []contentstream.Operation, cache *font.Cache, opts Options) (*PageResult, error) {
	in := &interpreter{
		state: textstate.New(),
		cache: cache,
		opts:  opts,
	}
	in.state.ResetFont = opts.ResetFontOnBeginText

	for _, op := range ops {
		if err := in.apply(op); err != nil {
			return nil, err
		}
	}

	return &PageResult{
		Runs:        largest(in.runs, in.state.MaxFontSize),
		MaxFontSize: in.state.MaxFontSize,
		Skipped:     in.skipped,
	}, nil
}

type interpreter struct {
	state *textstate.State
	cache *font.Cache
	opts  Options

	runs    []PositionedText
	skipped []error
}

func (in *interpreter) apply(op contentstream.Operation) error {
	switch op := op.(type) {
	case contentstream.BeginText:
		in.state.BeginText()
	case contentstream.EndText:
		in.state.EndText()
	case contentstream.SetLeading:
		in.state.SetLeading(op.Amount)
	case contentstream.SetFont:
		in.state.SetFont(in.cache.Font(op.Name), op.Size)
	case contentstream.SetGraphicsState:
		if info, size, ok := in.cache.GraphicsStateFont(op.Name); ok {
			in.state.SetFont(info, size)
		}

	case contentstream.MoveText:
		in.state.TranslateText(op.DX, op.DY)
	case contentstream.MoveTextSetLeading:
		in.state.TranslateTextSetLeading(op.DX, op.DY)
	case contentstream.SetTextMatrix:
		in.state.SetTextMatrix(op.A, op.B, op.C, op.D, op.E, op.F)
	case contentstream.NextLine:
		in.state.NextLine()

	case contentstream.ShowText:
		return in.showText(op.Operator(), op.Data)
	case contentstream.ShowTextAdjusted:
		return in.showTextArray(op)
	case contentstream.NextLineShowText:
		in.state.NextLine()
		return in.showText(op.Operator(), op.Data)
	case contentstream.NextLineShowTextSpaced:
		in.state.NextLine()
		return in.showText(op.Operator(), op.Data)
	}
	return nil
}

func (in *interpreter) showText(operator string, data []byte) error {
	s, ok, err := in.decode(operator, data)
	if err != nil || !ok {
		return err
	}
	in.emit(s)
	return nil
}

func (in *interpreter) showTextArray(op contentstream.ShowTextAdjusted) error {
	var sb strings.Builder
	for _, el := range op.Elements {
		if el.IsAdjustment {
			if el.Adjustment < spaceThreshold {
				sb.WriteByte(' ')
			}
			continue
		}
		s, ok, err := in.decode(op.Operator(), el.Data)
		if err != nil {
			return err
		}
		if ok {
			sb.WriteString(s)
		}
	}
	in.emit(sb.String())
	return nil
}

// decode decodes data with the current font. ok is false when the string
// was dropped.
func (in *interpreter) decode(operator string, data []byte) (s string, ok bool, err error) {
	s, err = in.state.Font.Decode(data)
	if err == nil {
		return s, true, nil
	}

	err = &StringDecodeError{Operator: operator, Font: in.state.Font.Name(), Err: err}
	if in.opts.StrictStrings {
		return "", false, err
	}
	in.skipped = append(in.skipped, err)
	return "", false, nil
}

func (in *interpreter) emit(s string) {
	in.runs = append(in.runs, PositionedText{
		Text:     s,
		FontSize: in.state.FontSize,
		Y:        in.state.Y,
	})
}

// largest returns the runs drawn at size.
func largest(runs []PositionedText, size float64) []PositionedText {
	var out []PositionedText
	for _, run := range runs {
		if math.Abs(run.FontSize-size) <= sizeTolerance {
			out = append(out, run)
		}
	}
	return out
}
