package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite [command] [flags] [base-path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the site (default)")
	fmt.Fprintln(w, "  serve      Build, serve and rebuild on change")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check the site layout and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdsite help <command>' for details on a specific command.")
}

// printSiteFlags prints the flags shared by build, serve and config.
func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --content <dir>       Markdown content directory (default: content)")
	fmt.Fprintln(w, "      --static <dir>        Static files directory (default: static)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory, removed first (default: public)")
	fmt.Fprintln(w, "  -b, --base-path <path>    Prefix for root-relative href/src (default: /)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --template <s>        Template name or .html file (default: page)")
	fmt.Fprintln(w, "      --style <s>           Stylesheet written as index.css, or none")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with templates/ and styles/ overrides")
	fmt.Fprintln(w, "      --engine <s>          Markdown engine: native, goldmark")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: site)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite build [flags] [base-path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every markdown page under the content directory into the")
	fmt.Fprintln(w, "output directory, after copying the static tree.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  base-path    Same as --base-path, e.g. /repo/ for project pages")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite serve [flags] [base-path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the site, serve the output directory and rebuild when content,")
	fmt.Fprintln(w, "static files or assets change. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: localhost:8888)")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite config [flags] [base-path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a build would use, as YAML, after merging")
	fmt.Fprintln(w, "the config file, MDSITE_* environment variables and flags.")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdServe:
		printServeUsage(env.Stdout)
	case cmdConfig:
		printConfigUsage(env.Stdout)
	case cmdDoctor:
		fmt.Fprintln(env.Stdout, "Usage: mdsite doctor [--json] [-c config]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the config, content and static directories, the template and")
		fmt.Fprintln(env.Stdout, "the preview address. Exits 1 when a build would fail.")
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: mdsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: mdsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
