package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild   = "build"
	cmdServe   = "serve"
	cmdConfig  = "config"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// ErrUnknownCommand is returned for a first argument that is neither a
// command, a flag, nor a base path.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	env := DefaultEnv()
	if hasVerboseFlag(os.Args[1:]) {
		env.applyLogLevel(commonFlags{verbose: true})
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		env.Logger.Debug(fmt.Sprintf(format, args...))
	}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// runMain dispatches a command line and returns the process exit code.
// Without a command, arguments are treated as build arguments, so
// "mdsite /repo/" builds with that base path.
func runMain(ctx context.Context, args []string, env *Environment) int {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	cmd, cmdArgs := splitCommand(rest)

	var err error
	switch cmd {
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "mdsite %s\n", Version)
		return ExitSuccess
	case cmdHelp:
		runHelp(cmdArgs, env)
		return ExitSuccess
	case cmdDoctor:
		return runDoctorCmd(cmdArgs, env)
	case cmdConfig:
		err = runConfigCmd(cmdArgs, env)
	case cmdServe:
		err = runServe(ctx, cmdArgs, env)
	case cmdBuild:
		err = runBuildCmd(ctx, cmdArgs, env)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		runHelp([]string{cmd}, env)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// splitCommand separates the command name from its arguments. A first
// argument that is a flag or looks like a base path selects build.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return cmdBuild, nil
	}

	first := args[0]
	switch first {
	case cmdBuild, cmdServe, cmdConfig, cmdDoctor, cmdVersion, cmdHelp:
		return first, args[1:]
	case "--version":
		return cmdVersion, nil
	case "-h", "--help":
		return cmdHelp, nil
	}

	if strings.HasPrefix(first, "-") || looksLikeBasePath(first) {
		return cmdBuild, args
	}
	return first, args[1:]
}

// looksLikeBasePath accepts the positional base-path form: "/", "/repo/"
// or an absolute URL.
func looksLikeBasePath(s string) bool {
	return strings.HasPrefix(s, "/") || strings.Contains(s, "://")
}

// hasVerboseFlag scans raw arguments before flag parsing, so startup
// logging honours --verbose.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// hintFor returns an actionable hint for well-known failures, or "".
func hintFor(err error) string {
	var delimErr *mdsite.DelimiterError

	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.DefaultName))
	case errors.As(err, &delimErr):
		return hints.ForUnterminatedDelimiter(delimErr.Delimiter)
	case errors.Is(err, mdsite.ErrUnterminatedDelimiter):
		return hints.ForUnterminatedDelimiter("")
	case errors.Is(err, mdsite.ErrMissingTitle):
		return hints.ForMissingTitle()
	case errors.Is(err, mdsite.ErrMissingPlaceholder):
		return hints.ForMissingPlaceholder()
	case errors.Is(err, mdsite.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(assets.NewEmbeddedLoader().TemplateNames())
	case errors.Is(err, ErrContentDir), errors.Is(err, ErrNoPages):
		return hints.ForContentDirectory(config.DefaultConfig().Input.ContentDir)
	case errors.Is(err, ErrOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrServeListen):
		var le *listenError
		if errors.As(err, &le) {
			return hints.ForServeAddress(le.addr)
		}
	}
	return ""
}
