package mdsite

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/block"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Converter orchestrates the markdown-to-page pipeline.
// Create with NewConverter and call Convert for each page.
type Converter struct {
	cfg              converterConfig
	assetLoader      assets.AssetLoader
	preprocessor     pipeline.MarkdownPreprocessor
	htmlConverter    pipeline.HTMLConverter
	templateInjector pipeline.TemplateInjector
	template         string
}

// NewConverter creates a Converter with default configuration.
// Returns error if the engine is unknown or the template cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:              converterConfig{templateName: assets.DefaultTemplateName},
		assetLoader:      assets.NewEmbeddedLoader(),
		preprocessor:     &pipeline.SourcePreprocessor{},
		templateInjector: &pipeline.TemplateInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Tests may inject a converter before the engine is resolved.
	if c.htmlConverter == nil {
		conv, err := pipeline.NewHTMLConverter(c.cfg.engine)
		if err != nil {
			return nil, err
		}
		c.htmlConverter = conv
	}

	if err := c.resolveTemplate(); err != nil {
		return nil, err
	}

	return c, nil
}

// resolveTemplate loads and validates the page template once, so a bad
// template fails at construction instead of on every page.
func (c *Converter) resolveTemplate() error {
	tmpl := c.cfg.template
	if tmpl == "" {
		loaded, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
		if err != nil {
			return fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
		}
		tmpl = loaded
	}

	if err := pipeline.ValidateTemplate(tmpl); err != nil {
		return err
	}
	c.template = tmpl
	return nil
}

// Convert runs the full pipeline for one page.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (page *Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	title, err := block.ExtractTitle(md)
	if err != nil {
		return nil, err
	}

	content, err := c.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent, err := c.templateInjector.InjectPage(ctx, c.template, pipeline.PageData{
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("injecting template: %w", err)
	}

	htmlContent, err = pipeline.RewriteBasePath(htmlContent, c.cfg.basePath)
	if err != nil {
		return nil, fmt.Errorf("rewriting base path: %w", err)
	}

	return &Page{
		Title:   title,
		Content: content,
		HTML:    []byte(htmlContent),
	}, nil
}

// BasePath returns the normalised base path applied to every page.
func (c *Converter) BasePath() string {
	return pipeline.NormalizeBasePath(c.cfg.basePath)
}
