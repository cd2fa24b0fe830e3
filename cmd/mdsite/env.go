package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-mdsite/internal/assets"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, logging, and asset loading.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	LogLevel    *slog.LevelVar // Adjusted by --quiet and --verbose
	AssetLoader assets.AssetLoader
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	return newEnv(os.Stdout, os.Stderr)
}

// newEnv builds an environment whose logger writes text records to stderr.
func newEnv(stdout, stderr io.Writer) *Environment {
	level := new(slog.LevelVar)
	return &Environment{
		Now:         time.Now,
		Stdout:      stdout,
		Stderr:      stderr,
		Logger:      slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		LogLevel:    level,
		AssetLoader: assets.NewEmbeddedLoader(),
	}
}

// applyLogLevel maps the output flags onto the logger level.
func (e *Environment) applyLogLevel(f commonFlags) {
	switch {
	case f.quiet:
		e.LogLevel.Set(slog.LevelWarn)
	case f.verbose:
		e.LogLevel.Set(slog.LevelDebug)
	default:
		e.LogLevel.Set(slog.LevelInfo)
	}
}
