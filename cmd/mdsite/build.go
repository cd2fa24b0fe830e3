package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// Sentinel errors for site builds.
var (
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrContentDir     = errors.New("content directory not found")
	ErrNoPages        = errors.New("no markdown pages found")
	ErrOutputDir      = errors.New("failed to prepare output directory")
	ErrCopyStatic     = errors.New("failed to copy static files")
	ErrWriteStyle     = errors.New("failed to write stylesheet")
	ErrPagesFailed    = errors.New("page build failed")
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// styleFileName is the stylesheet the default templates link to.
const styleFileName = "index.css"

// buildOptions controls how a build reports progress.
type buildOptions struct {
	quiet   bool
	verbose bool
}

// BuildReport summarises a completed build.
type BuildReport struct {
	Pages    int
	Failed   int
	Bytes    int64
	Static   fileutil.CopyStats
	Duration time.Duration
}

// runBuildCmd handles the build command and the bare base-path form.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	env.applyLogLevel(flags.common)

	cfg, err := resolveConfig(flags, positional, env)
	if err != nil {
		return err
	}

	_, err = buildSite(ctx, cfg, env, buildOptions{quiet: flags.common.quiet, verbose: flags.common.verbose})
	return err
}

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	env.applyLogLevel(flags.common)

	cfg, err := resolveConfig(flags, positional, env)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}

// resolveConfig merges config file, environment and flags, in increasing
// priority, then validates the result.
func resolveConfig(flags *buildFlags, positional []string, env *Environment) (*config.Config, error) {
	if len(positional) > 1 {
		return nil, fmt.Errorf("%w: expected at most one base path, got %d", ErrTooManyArgs, len(positional))
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Logger)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg, err := loadConfig(name, env)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if len(positional) == 1 {
		cfg.Output.BasePath = positional[0]
	}

	if err := validateWorkers(cfg.Build.Workers); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfig loads an explicit config, or the default "site" config when
// one exists. Without either, the built-in defaults apply.
func loadConfig(nameOrPath string, env *Environment) (*config.Config, error) {
	if nameOrPath != "" {
		return config.LoadConfig(nameOrPath)
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		env.Logger.Debug("no site config found, using defaults")
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	f := flags.site
	setIfNotEmpty(&cfg.Input.ContentDir, f.content)
	setIfNotEmpty(&cfg.Input.StaticDir, f.static)
	setIfNotEmpty(&cfg.Output.Dir, f.output)
	setIfNotEmpty(&cfg.Output.BasePath, f.basePath)
	setIfNotEmpty(&cfg.Assets.Template, f.template)
	setIfNotEmpty(&cfg.Assets.Style, f.style)
	setIfNotEmpty(&cfg.Assets.BasePath, f.assetPath)
	setIfNotEmpty(&cfg.Build.Engine, f.engine)
	if f.workers != 0 {
		cfg.Build.Workers = f.workers
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkers, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkers, n, config.MaxWorkers)
	}
	return nil
}

// buildSite regenerates the whole output directory:
// reset output, copy static tree, write stylesheet, render every page.
func buildSite(ctx context.Context, cfg *config.Config, env *Environment, opts buildOptions) (*BuildReport, error) {
	start := env.Now()

	if !fileutil.DirExists(cfg.Input.ContentDir) {
		return nil, fmt.Errorf("%w: %s", ErrContentDir, cfg.Input.ContentDir)
	}

	loader, err := resolveAssetLoader(cfg, env)
	if err != nil {
		return nil, err
	}

	conv, err := newSiteConverter(cfg)
	if err != nil {
		return nil, err
	}

	pages, err := discoverPages(cfg.Input.ContentDir, cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("discovering pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, cfg.Input.ContentDir)
	}

	if err := fileutil.ResetDir(cfg.Output.Dir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	report := &BuildReport{}
	if fileutil.DirExists(cfg.Input.StaticDir) {
		stats, err := fileutil.CopyTree(cfg.Input.StaticDir, cfg.Output.Dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCopyStatic, err)
		}
		report.Static = stats
		env.Logger.Debug("copied static files",
			logPath(cfg.Input.StaticDir), logCount(stats.Files), logOutput(cfg.Output.Dir))
	} else {
		env.Logger.Debug("no static directory", logPath(cfg.Input.StaticDir))
	}

	if err := writeStyle(cfg, loader, env); err != nil {
		return nil, err
	}

	results := buildBatch(ctx, conv, pages, mdsite.ResolvePoolSize(cfg.Build.Workers), env.Logger)
	summary := countResults(results)
	report.Pages = summary.Succeeded
	report.Failed = summary.Failed
	report.Bytes = summary.Bytes
	report.Duration = env.Now().Sub(start)

	printResults(results, opts, env)
	if !opts.quiet && opts.verbose {
		fmt.Fprintf(env.Stdout, "Built %d page(s) (%s) and copied %d static file(s) (%s) in %v\n",
			report.Pages, formatBytes(report.Bytes),
			report.Static.Files, formatBytes(report.Static.Bytes),
			report.Duration.Round(time.Millisecond))
	}

	if summary.Failed > 0 {
		return report, fmt.Errorf("%w: %d of %d: %w", ErrPagesFailed, summary.Failed, len(results), summary.FirstErr)
	}
	return report, nil
}

// resolveAssetLoader returns the loader used for the stylesheet: the
// custom asset directory with embedded fallback, or the embedded assets.
func resolveAssetLoader(cfg *config.Config, env *Environment) (assets.AssetLoader, error) {
	if cfg.Assets.BasePath == "" {
		return env.AssetLoader, nil
	}
	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mdsite.ErrInvalidAssetPath, err)
	}
	return resolver, nil
}

// newSiteConverter builds the page converter from the resolved config.
func newSiteConverter(cfg *config.Config) (*mdsite.Converter, error) {
	opts := []mdsite.Option{
		mdsite.WithBasePath(cfg.Output.BasePath),
		mdsite.WithEngine(cfg.Build.Engine),
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdsite.WithAssetPath(cfg.Assets.BasePath))
	}

	if fileutil.IsFilePath(cfg.Assets.Template) {
		tmpl, err := assets.LoadTemplateFile(cfg.Assets.Template)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mdsite.WithTemplate(tmpl))
	} else if cfg.Assets.Template != "" {
		opts = append(opts, mdsite.WithTemplateName(cfg.Assets.Template))
	}

	return mdsite.NewConverter(opts...)
}

// writeStyle writes the configured stylesheet as index.css, unless styles
// are disabled or the static tree already provided one.
func writeStyle(cfg *config.Config, loader assets.AssetLoader, env *Environment) error {
	if cfg.Assets.Style == "" || cfg.Assets.Style == config.StyleNone {
		return nil
	}

	dst := filepath.Join(cfg.Output.Dir, styleFileName)
	if fileutil.FileExists(dst) {
		env.Logger.Debug("static tree provides stylesheet", logOutput(dst))
		return nil
	}

	css, err := loader.LoadStyle(cfg.Assets.Style)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", cfg.Assets.Style, err)
	}
	if err := fileutil.WriteFileAtomic(dst, []byte(css)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteStyle, err)
	}
	return nil
}

// formatBytes renders a byte count for humans, e.g. "12 kB".
func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n)) // #nosec G115 -- clamped to non-negative
}
