package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-mdsite/internal/block"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Engine names accepted by NewHTMLConverter.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// ErrUnknownEngine indicates an engine name outside the supported set.
var ErrUnknownEngine = errors.New("unknown markdown engine")

// HTMLConverter abstracts Markdown to HTML conversion.
// Implementations return a fragment rooted at a single <div>.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// NewHTMLConverter returns the converter registered under name.
// An empty name selects the native engine.
func NewHTMLConverter(name string) (HTMLConverter, error) {
	switch name {
	case "", EngineNative:
		return NewNativeConverter(), nil
	case EngineGoldmark:
		return NewGoldmarkConverter(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, name, EngineNative, EngineGoldmark)
	}
}

// NativeConverter renders the site dialect through the block assembler.
type NativeConverter struct{}

// NewNativeConverter creates a NativeConverter.
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

// ToHTML assembles the document tree and renders it. Inline delimiter
// errors are returned unwrapped so callers can match them with errors.Is.
func (c *NativeConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := block.ToHTMLNode(content)
	if err != nil {
		return "", err
	}

	out, err := root.Render()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	return out, nil
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
// It accepts full CommonMark plus GFM and is offered as an alternative
// engine for content outside the site dialect.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to a <div> fragment.
// Goldmark has no context support, so conversion runs in a goroutine and
// the caller returns early on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		buf.WriteString("<div>")
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		buf.WriteString("</div>")
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface checks.
var (
	_ HTMLConverter = (*NativeConverter)(nil)
	_ HTMLConverter = (*GoldmarkConverter)(nil)
)
