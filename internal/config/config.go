package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// DefaultName is the config looked up when no --config flag is given.
const DefaultName = "site"

// Field limits.
const (
	MaxPathLength = 4096 // PATH_MAX on Linux
	MaxURLLength  = 2048 // Browser limit
	MaxAddrLength = 255  // host:port
	MaxNameLength = 100  // Asset names
	MaxWorkers    = 64
)

// Config holds all configuration for a site build.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Assets AssetsConfig `yaml:"assets"`
	Build  BuildConfig  `yaml:"build"`
	Serve  ServeConfig  `yaml:"serve"`
}

// InputConfig defines where page sources and static files live.
type InputConfig struct {
	ContentDir string `yaml:"contentDir"` // Markdown tree, mirrored into the output
	StaticDir  string `yaml:"staticDir"`  // Copied verbatim before pages are built
}

// OutputConfig defines the generated site.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // Removed and recreated on every build
	BasePath string `yaml:"basePath"` // Prefix for root-relative links ("/" = none)
}

// AssetsConfig defines the page template and stylesheet.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Custom assets directory (empty = embedded only)
	Template string `yaml:"template"` // Template name or path to an .html file
	Style    string `yaml:"style"`    // Stylesheet name written as index.css ("none" = skip)
}

// BuildConfig defines conversion options.
type BuildConfig struct {
	Engine  string `yaml:"engine"`  // "native" or "goldmark"
	Workers int    `yaml:"workers"` // 0 = auto
}

// ServeConfig defines the preview server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// StyleNone disables writing a stylesheet.
const StyleNone = "none"

// DefaultConfig returns the configuration used when no file is found:
// the content/, static/, public/ layout served from the site root.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{ContentDir: "content", StaticDir: "static"},
		Output: OutputConfig{Dir: "public", BasePath: "/"},
		Assets: AssetsConfig{Template: assets.DefaultTemplateName, Style: assets.DefaultStyleName},
		Build:  BuildConfig{Engine: pipeline.EngineNative},
		Serve:  ServeConfig{Addr: "localhost:8888"},
	}
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for callers that build
// a Config from flags.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.contentDir", c.Input.ContentDir, MaxPathLength},
		{"input.staticDir", c.Input.StaticDir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.basePath", c.Output.BasePath, MaxURLLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.template", c.Assets.Template, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxNameLength},
		{"serve.addr", c.Serve.Addr, MaxAddrLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch c.Build.Engine {
	case "", pipeline.EngineNative, pipeline.EngineGoldmark:
		// valid
	default:
		return fmt.Errorf("%w: build.engine %q (must be %s or %s)",
			ErrInvalidField, c.Build.Engine, pipeline.EngineNative, pipeline.EngineGoldmark)
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidField, MaxWorkers, c.Build.Workers)
	}

	if c.Assets.Template != "" && !fileutil.IsFilePath(c.Assets.Template) {
		if err := assets.ValidateAssetName(c.Assets.Template); err != nil {
			return fmt.Errorf("assets.template: %w", err)
		}
	}
	if c.Assets.Style != "" && c.Assets.Style != StyleNone {
		if err := assets.ValidateAssetName(c.Assets.Style); err != nil {
			return fmt.Errorf("assets.style: %w", err)
		}
	}

	// The output directory is removed before every build, so no source may
	// live inside it. Static files are copied into it, so it may not live
	// inside the static tree either.
	if fileutil.IsWithin(c.Input.ContentDir, c.Output.Dir) {
		return fmt.Errorf("%w: input.contentDir %q is inside output.dir %q", ErrInvalidField, c.Input.ContentDir, c.Output.Dir)
	}
	if fileutil.IsWithin(c.Input.StaticDir, c.Output.Dir) {
		return fmt.Errorf("%w: input.staticDir %q is inside output.dir %q", ErrInvalidField, c.Input.StaticDir, c.Output.Dir)
	}
	if fileutil.IsWithin(c.Output.Dir, c.Input.StaticDir) {
		return fmt.Errorf("%w: output.dir %q is inside input.staticDir %q", ErrInvalidField, c.Output.Dir, c.Input.StaticDir)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// SearchPaths returns the locations tried for a config name, in order:
// current directory then ~/.config/go-mdsite/, each with .yaml and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-mdsite", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths order.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
