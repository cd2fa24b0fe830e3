package inline

import (
	"errors"
	"fmt"
	"strings"
)

// Inline delimiters, resolved in this order by Tokenize.
const (
	BoldDelimiter   = "**"
	ItalicDelimiter = "_"
	CodeDelimiter   = "`"
)

// Sentinel errors for tokenization.
var (
	ErrUnterminatedDelimiter = errors.New("unterminated inline delimiter")
	ErrUnsupportedDelimiter  = errors.New("unsupported inline delimiter")
)

// DelimiterError reports a delimiter that appears an odd number of times in
// a single plain-text run.
type DelimiterError struct {
	Delimiter string
	Text      string
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("%v: no closing %q in %q", ErrUnterminatedDelimiter, e.Delimiter, e.Text)
}

// Unwrap lets errors.Is match ErrUnterminatedDelimiter.
func (e *DelimiterError) Unwrap() error {
	return ErrUnterminatedDelimiter
}

// Tokenize parses raw inline text into an ordered list of spans.
// Returns a *DelimiterError if any bold, italic or code delimiter is left open.
func Tokenize(text string) ([]Span, error) {
	spans := []Span{NewSpan(text, Plain)}

	var err error
	for _, d := range []struct {
		delim string
		kind  Kind
	}{
		{BoldDelimiter, Bold},
		{ItalicDelimiter, Italic},
		{CodeDelimiter, Code},
	} {
		spans, err = SplitDelimiter(spans, d.delim, d.kind)
		if err != nil {
			return nil, err
		}
	}

	spans = SplitImages(spans)
	spans = SplitLinks(spans)
	return spans, nil
}

// SplitDelimiter splits every Plain span on delim. Pieces alternate between
// Plain and kind, starting with Plain; empty pieces are dropped. Spans of any
// other kind pass through untouched.
func SplitDelimiter(spans []Span, delim string, kind Kind) ([]Span, error) {
	if err := checkDelimiter(delim, kind); err != nil {
		return nil, err
	}

	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		pieces := strings.Split(s.Text, delim)
		if len(pieces)%2 == 0 {
			return nil, &DelimiterError{Delimiter: delim, Text: s.Text}
		}
		for i, piece := range pieces {
			if piece == "" {
				continue
			}
			if i%2 == 1 {
				out = append(out, NewSpan(piece, kind))
			} else {
				out = append(out, NewSpan(piece, Plain))
			}
		}
	}
	return out, nil
}

// checkDelimiter rejects delimiters outside the dialect and mismatched kinds.
func checkDelimiter(delim string, kind Kind) error {
	var want Kind
	switch delim {
	case BoldDelimiter:
		want = Bold
	case ItalicDelimiter:
		want = Italic
	case CodeDelimiter:
		want = Code
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDelimiter, delim)
	}
	if kind != want {
		return fmt.Errorf("%w: %q does not produce %s spans", ErrUnsupportedDelimiter, delim, kind)
	}
	return nil
}

// SplitImages splits image syntax out of every Plain span.
func SplitImages(spans []Span) []Span {
	return splitPairs(spans, ExtractImages,
		func(p Pair) string { return "![" + p.Label + "](" + p.URL + ")" },
		func(p Pair) Span { return NewImage(p.Label, p.URL) },
	)
}

// SplitLinks splits link syntax out of every Plain span.
func SplitLinks(spans []Span) []Span {
	return splitPairs(spans, ExtractLinks,
		func(p Pair) string { return "[" + p.Label + "](" + p.URL + ")" },
		func(p Pair) Span { return NewLink(p.Label, p.URL) },
	)
}

// splitPairs cuts the remainder of each Plain span once per extracted pair,
// emitting the non-empty text before it, the typed span, and finally any
// non-empty text after the last pair.
func splitPairs(spans []Span, extract func(string) []Pair, syntax func(Pair) string, build func(Pair) Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		pairs := extract(s.Text)
		if len(pairs) == 0 {
			out = append(out, s)
			continue
		}

		rest := s.Text
		for _, p := range pairs {
			before, after, found := strings.Cut(rest, syntax(p))
			if !found {
				break
			}
			if before != "" {
				out = append(out, NewSpan(before, Plain))
			}
			out = append(out, build(p))
			rest = after
		}
		if rest != "" {
			out = append(out, NewSpan(rest, Plain))
		}
	}
	return out
}
