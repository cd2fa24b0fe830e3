package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsite/internal/config"
)

// envPrefix namespaces the environment variables read by mdsite.
const envPrefix = "MDSITE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDSITE_CONFIG: config name or path
	ContentDir string // MDSITE_CONTENT_DIR
	StaticDir  string // MDSITE_STATIC_DIR
	OutputDir  string // MDSITE_OUTPUT_DIR
	BasePath   string // MDSITE_BASE_PATH: e.g. /repo/ for project pages
	Template   string // MDSITE_TEMPLATE
	Style      string // MDSITE_STYLE
	AssetPath  string // MDSITE_ASSET_PATH
	Engine     string // MDSITE_ENGINE
	Addr       string // MDSITE_ADDR
	Workers    int    // MDSITE_WORKERS
}

// knownEnvVars lists valid MDSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSITE_CONFIG":      true,
	"MDSITE_CONTENT_DIR": true,
	"MDSITE_STATIC_DIR":  true,
	"MDSITE_OUTPUT_DIR":  true,
	"MDSITE_BASE_PATH":   true,
	"MDSITE_TEMPLATE":    true,
	"MDSITE_STYLE":       true,
	"MDSITE_ASSET_PATH":  true,
	"MDSITE_ENGINE":      true,
	"MDSITE_ADDR":        true,
	"MDSITE_WORKERS":     true,
	"MDSITE_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDSITE_CONFIG"),
		ContentDir: os.Getenv("MDSITE_CONTENT_DIR"),
		StaticDir:  os.Getenv("MDSITE_STATIC_DIR"),
		OutputDir:  os.Getenv("MDSITE_OUTPUT_DIR"),
		BasePath:   os.Getenv("MDSITE_BASE_PATH"),
		Template:   os.Getenv("MDSITE_TEMPLATE"),
		Style:      os.Getenv("MDSITE_STYLE"),
		AssetPath:  os.Getenv("MDSITE_ASSET_PATH"),
		Engine:     os.Getenv("MDSITE_ENGINE"),
		Addr:       os.Getenv("MDSITE_ADDR"),
	}

	// Invalid or non-positive values are ignored, like an unset variable.
	if workers := os.Getenv("MDSITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDSITE_* variables.
// Helps catch typos like MDSITE_OUTPUT instead of MDSITE_OUTPUT_DIR.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", slog.String("name", name))
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Precedence: flags > env vars > config file > defaults
// (flags are applied afterwards via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfNotEmpty(&cfg.Input.ContentDir, env.ContentDir)
	setIfNotEmpty(&cfg.Input.StaticDir, env.StaticDir)
	setIfNotEmpty(&cfg.Output.Dir, env.OutputDir)
	setIfNotEmpty(&cfg.Output.BasePath, env.BasePath)
	setIfNotEmpty(&cfg.Assets.Template, env.Template)
	setIfNotEmpty(&cfg.Assets.Style, env.Style)
	setIfNotEmpty(&cfg.Assets.BasePath, env.AssetPath)
	setIfNotEmpty(&cfg.Build.Engine, env.Engine)
	setIfNotEmpty(&cfg.Serve.Addr, env.Addr)
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
