package mdsite

import (
	"github.com/alnah/go-mdsite/internal/block"
)

// Render converts a document to an HTML fragment rooted at a single <div>,
// one child per block in reading order. Nothing is written on failure.
func Render(doc string) (string, error) {
	root, err := block.ToHTMLNode(doc)
	if err != nil {
		return "", err
	}
	return root.Render()
}

// ExtractTitle returns the text of the first "# " heading block, inline
// markup included. Returns ErrMissingTitle if there is none.
func ExtractTitle(doc string) (string, error) {
	return block.ExtractTitle(doc)
}
