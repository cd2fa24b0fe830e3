package main

import (
	"errors"
	"os"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
)

// Exit codes for mdsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, templates or markdown
	ExitIO      = 3 // File not found, permission denied, bind failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/content errors (exit 2). Checked first: a page failure
	// caused by bad markdown is the author's to fix, not an I/O problem.
	if errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidWorkers) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, mdsite.ErrEmptyMarkdown) ||
		errors.Is(err, mdsite.ErrMissingTitle) ||
		errors.Is(err, mdsite.ErrUnterminatedDelimiter) ||
		errors.Is(err, mdsite.ErrUnknownEngine) ||
		errors.Is(err, mdsite.ErrMissingPlaceholder) ||
		errors.Is(err, mdsite.ErrTemplateNotFound) ||
		errors.Is(err, mdsite.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrContentDir) ||
		errors.Is(err, ErrNoPages) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, ErrCopyStatic) ||
		errors.Is(err, ErrWriteStyle) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrServeListen) {
		return ExitIO
	}

	return ExitGeneral
}
