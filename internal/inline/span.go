// Package inline tokenizes the inline content of a Markdown block into typed
// spans: plain text, bold, italic, code, links and images.
//
// Tokenization is a fixed pipeline of passes over a growing span list. Each
// pass only re-examines spans still marked Plain:
//
//	**bold**  ->  _italic_  ->  `code`  ->  ![alt](src)  ->  [text](href)
//
// Emphasis does not nest; the first pass to claim a character range wins.
package inline

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdsite/internal/htmlnode"
)

// ErrUnknownKind indicates a span carries a kind outside the supported set.
var ErrUnknownKind = errors.New("unknown span kind")

// Kind identifies the semantic type of a span.
type Kind int

// Span kinds.
const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "text"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Span is a unit of inline content. URL is set only for Link and Image
// spans; for Image, Text holds the alt text.
type Span struct {
	Text string
	Kind Kind
	URL  string
}

// NewSpan returns a span of a kind that carries no destination.
func NewSpan(text string, kind Kind) Span {
	return Span{Text: text, Kind: kind}
}

// NewLink returns a Link span.
func NewLink(text, url string) Span {
	return Span{Text: text, Kind: Link, URL: url}
}

// NewImage returns an Image span with alt text and source.
func NewImage(alt, src string) Span {
	return Span{Text: alt, Kind: Image, URL: src}
}

// String implements fmt.Stringer for test failure output.
func (s Span) String() string {
	if s.URL == "" {
		return fmt.Sprintf("Span(%q, %s)", s.Text, s.Kind)
	}
	return fmt.Sprintf("Span(%q, %s, %q)", s.Text, s.Kind, s.URL)
}

// ToNode converts the span into an HTML leaf.
func (s Span) ToNode() (htmlnode.Node, error) {
	switch s.Kind {
	case Plain:
		return htmlnode.NewLeaf("", s.Text), nil
	case Bold:
		return htmlnode.NewLeaf("b", s.Text), nil
	case Italic:
		return htmlnode.NewLeaf("i", s.Text), nil
	case Code:
		return htmlnode.NewLeaf("code", s.Text), nil
	case Link:
		return htmlnode.NewLeaf("a", s.Text, htmlnode.Attr{Key: "href", Val: s.URL}), nil
	case Image:
		return htmlnode.NewLeaf("img", "",
			htmlnode.Attr{Key: "src", Val: s.URL},
			htmlnode.Attr{Key: "alt", Val: s.Text},
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, s.Kind)
	}
}

// ToNodes converts spans into HTML leaves, preserving order.
// The result is never nil so it can serve directly as a parent's children.
func ToNodes(spans []Span) ([]htmlnode.Node, error) {
	nodes := make([]htmlnode.Node, 0, len(spans))
	for _, s := range spans {
		n, err := s.ToNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
