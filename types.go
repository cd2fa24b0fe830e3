package mdsite

import (
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Engine names accepted by WithEngine.
const (
	EngineNative   = pipeline.EngineNative
	EngineGoldmark = pipeline.EngineGoldmark
)

// Input contains the per-page data for conversion.
type Input struct {
	Markdown string // Page source (required)
}

// Page is the result of converting one Markdown source.
type Page struct {
	Title   string // Text of the first "# " heading
	Content string // Rendered <div> fragment before templating
	HTML    []byte // Complete page: template filled and base path applied
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the settings applied by options.
type converterConfig struct {
	template     string // raw template content; wins over templateName
	templateName string
	assetPath    string
	basePath     string
	engine       string
}

// WithTemplate sets the page template content directly.
// It must contain {{ Content }}; {{ Title }} is optional.
func WithTemplate(tmpl string) Option {
	return func(c *Converter) {
		c.cfg.template = tmpl
	}
}

// WithTemplateName selects a named template from the asset loader.
// The default is "page".
func WithTemplateName(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithAssetPath sets a directory whose templates/ and styles/ override the
// embedded assets by name.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithBasePath sets the prefix applied to root-relative href and src values.
// "/" (the default) leaves links unchanged.
func WithBasePath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.basePath = basePath
	}
}

// WithEngine selects the Markdown engine: EngineNative (default) or
// EngineGoldmark.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}
