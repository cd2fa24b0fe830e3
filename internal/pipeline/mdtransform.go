package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Runs of blank lines collapse to one block separator
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SourcePreprocessor prepares page sources written on any platform for the
// block splitter, which only recognises "\n\n" as a block boundary.
type SourcePreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *SourcePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = stripBOM(content)
	content = normalizeLineEndings(content)
	content = normalizeUnicode(content)
	content = compressBlankLines(content)
	return content
}

// stripBOM removes a leading UTF-8 byte order mark.
func stripBOM(content string) string {
	return strings.TrimPrefix(content, "\uFEFF")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// normalizeUnicode converts text to NFC so that composed and decomposed
// accents produce identical titles and output.
func normalizeUnicode(content string) string {
	return norm.NFC.String(content)
}

// compressBlankLines limits consecutive blank lines to 1.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*SourcePreprocessor)(nil)
