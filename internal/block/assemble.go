package block

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdsite/internal/htmlnode"
	"github.com/alnah/go-mdsite/internal/inline"
)

// ErrMissingTitle indicates the document has no top-level heading block.
var ErrMissingTitle = errors.New("no h1 heading found")

// titlePrefix marks a top-level heading block.
const titlePrefix = "# "

// Fixed item marker widths. Ordered items numbered 10 and above keep part
// of their marker because the width does not grow with the digit count.
const (
	bulletWidth  = len(bulletPrefix)
	orderedWidth = len("1. ")
)

// ToHTMLNode converts a document into a div whose children are the block
// fragments in reading order. Fails on the first block whose inline content
// has an unterminated delimiter.
func ToHTMLNode(doc string) (*htmlnode.Parent, error) {
	blocks := Split(doc)
	children := make([]htmlnode.Node, 0, len(blocks))

	for _, b := range blocks {
		node, err := blockToNode(b)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}

	return htmlnode.NewParent("div", children), nil
}

// ExtractTitle returns the text of the first block that starts with "# ".
// Returns ErrMissingTitle if the document has none.
func ExtractTitle(doc string) (string, error) {
	for _, b := range Split(doc) {
		if title, ok := strings.CutPrefix(b, titlePrefix); ok {
			return title, nil
		}
	}
	return "", ErrMissingTitle
}

// blockToNode dispatches a block to the builder for its kind.
func blockToNode(b string) (htmlnode.Node, error) {
	kind := Classify(b)
	switch kind {
	case Code:
		return codeToNode(b), nil
	case Heading:
		return headingToNode(b)
	case Quote:
		return quoteToNode(b)
	case UnorderedList:
		return listToNode(b, "ul", bulletWidth)
	case OrderedList:
		return listToNode(b, "ol", orderedWidth)
	case Paragraph:
		return paragraphToNode(b)
	default:
		return nil, fmt.Errorf("unhandled block kind %s", kind)
	}
}

// codeToNode keeps the fenced content verbatim. One whitespace byte (space,
// tab or newline) right after the opening fence is dropped. Content before the
// closing fence is kept as is, including its final newline, and a
// non-whitespace byte after the opening fence is content, not separator.
func codeToNode(b string) htmlnode.Node {
	content := strings.TrimPrefix(b, codeFence)
	content = strings.TrimSuffix(content, codeFence)
	if content != "" && strings.IndexByte(" \t\n", content[0]) >= 0 {
		content = content[1:]
	}

	return htmlnode.NewParent("pre", []htmlnode.Node{
		htmlnode.NewLeaf("code", content),
	})
}

func headingToNode(b string) (htmlnode.Node, error) {
	marker, text, _ := strings.Cut(b, " ")
	level := strings.Count(marker, "#")

	children, err := textToChildren(text)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent(fmt.Sprintf("h%d", level), children), nil
}

func quoteToNode(b string) (htmlnode.Node, error) {
	lines := strings.Split(b, "\n")
	for i, line := range lines {
		lines[i] = line[len(quotePrefix):]
	}

	children, err := textToChildren(strings.Join(lines, " "))
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("blockquote", children), nil
}

func listToNode(b, tag string, markerWidth int) (htmlnode.Node, error) {
	lines := strings.Split(b, "\n")
	items := make([]htmlnode.Node, 0, len(lines))

	for _, line := range lines {
		children, err := textToChildren(line[markerWidth:])
		if err != nil {
			return nil, err
		}
		items = append(items, htmlnode.NewParent("li", children))
	}
	return htmlnode.NewParent(tag, items), nil
}

// paragraphToNode collapses every whitespace run, newlines included, into a
// single space before tokenizing.
func paragraphToNode(b string) (htmlnode.Node, error) {
	children, err := textToChildren(strings.Join(strings.Fields(b), " "))
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("p", children), nil
}

func textToChildren(text string) ([]htmlnode.Node, error) {
	spans, err := inline.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return inline.ToNodes(spans)
}
