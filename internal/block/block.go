// Package block segments a Markdown document into blocks, classifies each
// block by its line prefixes, and assembles the HTML node tree for the whole
// document.
package block

import (
	"fmt"
	"regexp"
	"strings"
)

// Block-level markers.
const (
	blockSeparator = "\n\n"
	codeFence      = "```"
	quotePrefix    = "> "
	bulletPrefix   = "- "
)

// headingToken matches the leading token of a heading block.
var headingToken = regexp.MustCompile(`^#{1,6}$`)

// Kind is the structural type of a block.
type Kind int

// Block kinds.
const (
	Paragraph Kind = iota
	Heading
	Code
	Quote
	UnorderedList
	OrderedList
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered list"
	case OrderedList:
		return "ordered list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Split cuts a document into blocks on blank lines. Each block is trimmed of
// surrounding whitespace; blocks that trim to nothing are dropped. Reading
// order is preserved.
func Split(doc string) []string {
	var blocks []string
	for _, piece := range strings.Split(doc, blockSeparator) {
		if b := strings.TrimSpace(piece); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Classify determines the kind of a single block. Rules are checked in
// priority order and Paragraph is the fallback, never an error.
func Classify(block string) Kind {
	if strings.HasPrefix(block, codeFence) && strings.HasSuffix(block, codeFence) {
		return Code
	}

	first, _, _ := strings.Cut(block, " ")
	if headingToken.MatchString(first) {
		return Heading
	}

	lines := strings.Split(block, "\n")
	switch {
	case strings.HasPrefix(block, quotePrefix):
		if allHavePrefix(lines, quotePrefix) {
			return Quote
		}
		return Paragraph
	case strings.HasPrefix(block, bulletPrefix):
		if allHavePrefix(lines, bulletPrefix) {
			return UnorderedList
		}
		return Paragraph
	case strings.HasPrefix(block, orderedPrefix(1)):
		for i, line := range lines {
			if !strings.HasPrefix(line, orderedPrefix(i+1)) {
				return Paragraph
			}
		}
		return OrderedList
	}

	return Paragraph
}

func allHavePrefix(lines []string, prefix string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

// orderedPrefix returns the marker expected on the n-th ordered list line.
func orderedPrefix(n int) string {
	return fmt.Sprintf("%d. ", n)
}
