package mdsite

import (
	"errors"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/block"
	"github.com/alnah/go-mdsite/internal/htmlnode"
	"github.com/alnah/go-mdsite/internal/inline"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Markdown errors.
	ErrUnterminatedDelimiter = inline.ErrUnterminatedDelimiter
	ErrMissingTitle          = block.ErrMissingTitle
	ErrMalformedNode         = htmlnode.ErrMalformedNode

	// Pipeline errors.
	ErrHTMLConversion     = pipeline.ErrHTMLConversion
	ErrUnknownEngine      = pipeline.ErrUnknownEngine
	ErrMissingPlaceholder = pipeline.ErrMissingPlaceholder

	// Asset loading errors.
	ErrTemplateNotFound = assets.ErrTemplateNotFound
)

// DelimiterError reports an inline delimiter left open inside a block.
type DelimiterError = inline.DelimiterError
