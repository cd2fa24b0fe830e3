// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdsite/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdsite") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable; use --output to pick another directory")
}

// ForContentDirectory returns hints for a missing content tree.
func ForContentDirectory(dir string) string {
	return format("create " + dir + "/index.md or use --content")
}

// ForTemplateNotFound lists the built-in templates.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path to an .html file")
}

// ForMissingPlaceholder explains the template contract.
func ForMissingPlaceholder() string {
	return format("templates must contain {{ Content }}; {{ Title }} is optional")
}

// ForUnterminatedDelimiter explains how to fix an unbalanced inline marker.
func ForUnterminatedDelimiter(delimiter string) string {
	if delimiter == "" {
		return format("close every **, _ and ` marker within the same block")
	}
	return format("close the " + delimiter + " marker within the same block, or put the text in a ``` code block")
}

// ForMissingTitle explains where the page title comes from.
func ForMissingTitle() string {
	return format(`every page needs a "# Title" heading as its own block`)
}

// ForServeAddress returns hints for preview server bind errors.
// Inside a container, a loopback address is unreachable from the host.
func ForServeAddress(addr string) string {
	var hints []string

	hints = append(hints, "use --addr to pick another port")
	if IsInContainer() && (strings.HasPrefix(addr, "localhost") || strings.HasPrefix(addr, "127.0.0.1")) {
		hints = append(hints, "use --addr 0.0.0.0:8888 inside Docker")
	}

	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
