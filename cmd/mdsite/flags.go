package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag wraps flag parsing failures so they map to a usage exit code.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds flags that override the site configuration.
type siteFlags struct {
	content   string
	static    string
	output    string
	basePath  string
	template  string
	style     string
	assetPath string
	engine    string
	workers   int
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	site   siteFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	build buildFlags
	addr  string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSiteFlags adds site layout and rendering flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.content, "content", "", "markdown content directory")
	fs.StringVar(&f.static, "static", "", "static files directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (removed and recreated)")
	fs.StringVarP(&f.basePath, "base-path", "b", "", "prefix for root-relative links")
	fs.StringVar(&f.template, "template", "", "template name or .html file path")
	fs.StringVar(&f.style, "style", "", "stylesheet name written as index.css (none = skip)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.engine, "engine", "", "markdown engine: native, goldmark")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// newFlagSet creates a silent FlagSet; usage and errors are printed by runMain.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve")
	addCommonFlags(fs, &f.build.common)
	addSiteFlags(fs, &f.build.site)
	fs.StringVar(&f.addr, "addr", "", "preview server listen address")

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}
	return f, fs.Args(), nil
}

// wrapFlagError keeps flag.ErrHelp distinguishable for -h/--help.
func wrapFlagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
}
