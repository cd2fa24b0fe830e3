package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Site     siteInfo   `json:"site"`
	Env      envInfo    `json:"environment"`
	Server   serverInfo `json:"server"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`

	config *config.Config // nil when the config could not be resolved
}

// siteInfo holds site layout checks.
type siteInfo struct {
	ConfigSource string `json:"config_source"` // path, or "defaults"
	ContentDir   string `json:"content_dir"`
	Pages        int    `json:"pages"`
	HasIndex     bool   `json:"has_index"`
	StaticDir    string `json:"static_dir"`
	StaticFound  bool   `json:"static_found"`
	Template     string `json:"template"`
	TemplateOK   bool   `json:"template_ok"`
	OutputDir    string `json:"output_dir"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// serverInfo holds preview server checks.
type serverInfo struct {
	Addr      string `json:"addr"`
	Available bool   `json:"available"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	configName := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			jsonOutput = true
		case "-c", "--config":
			if i+1 < len(args) {
				configName = args[i+1]
				i++
			}
		}
	}

	result := runDoctor(configName, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkConfig(result, configName, env)
	if result.config != nil {
		checkContent(result)
		checkStatic(result)
		checkTemplate(result)
		checkOutput(result)
		checkServer(result)
	}
	checkEnvironment(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkConfig resolves the effective configuration, with environment overrides.
func checkConfig(result *doctorResult, configName string, env *Environment) {
	envCfg := loadEnvConfig()
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg, err := loadConfig(configName, env)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return
	}
	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return
	}

	result.config = cfg
	result.Site.ConfigSource = configSource(configName)
}

// configSource reports which file the configuration came from.
func configSource(configName string) string {
	if fileutil.IsFilePath(configName) {
		return configName
	}
	name := configName
	if name == "" {
		name = config.DefaultName
	}
	for _, p := range config.SearchPaths(name) {
		if fileutil.FileExists(p) {
			return p
		}
	}
	return "defaults"
}

// checkContent counts pages and looks for the site index.
func checkContent(result *doctorResult) {
	dir := result.config.Input.ContentDir
	result.Site.ContentDir = dir

	if !fileutil.DirExists(dir) {
		result.Errors = append(result.Errors, fmt.Sprintf("Content directory not found: %s", dir))
		return
	}

	pages, err := discoverPages(dir, result.config.Output.Dir)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Content directory unreadable: %v", err))
		return
	}
	result.Site.Pages = len(pages)
	if len(pages) == 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("No markdown pages in %s", dir))
		return
	}

	result.Site.HasIndex = fileutil.FileExists(filepath.Join(dir, "index.md"))
	if !result.Site.HasIndex {
		result.Warnings = append(result.Warnings, fmt.Sprintf("No %s; the site root will have no page", filepath.Join(dir, "index.md")))
	}
}

func checkStatic(result *doctorResult) {
	dir := result.config.Input.StaticDir
	result.Site.StaticDir = dir
	result.Site.StaticFound = fileutil.DirExists(dir)
}

// checkTemplate constructs the converter, which loads and validates the template.
func checkTemplate(result *doctorResult) {
	result.Site.Template = result.config.Assets.Template
	if _, err := newSiteConverter(result.config); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Template: %v", err))
		return
	}
	result.Site.TemplateOK = true
}

// checkOutput verifies the output directory can be created and written.
func checkOutput(result *doctorResult) {
	dir := result.config.Output.Dir
	result.Site.OutputDir = dir

	parent := filepath.Dir(filepath.Clean(dir))
	probe, err := os.CreateTemp(parent, ".mdsite-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output parent not writable: %s", parent))
		return
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())
}

// checkServer verifies the preview address can be bound.
func checkServer(result *doctorResult) {
	addr := result.config.Serve.Addr
	result.Server.Addr = addr

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Preview address %s unavailable: %v", addr, err))
		return
	}
	_ = ln.Close()
	result.Server.Available = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container && result.config != nil && isLoopback(result.config.Serve.Addr) {
		result.Warnings = append(result.Warnings,
			"Container detected but serve.addr is loopback; use --addr 0.0.0.0:8888 to reach the preview from the host")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("MDSITE_CONTAINER") == "1" {
		return true, "MDSITE_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdsite doctor")
	fmt.Fprintln(w)

	if r.config != nil {
		fmt.Fprintln(w, "Site")
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.Site.ConfigSource)
		if r.Site.Pages > 0 {
			fmt.Fprintf(w, "  [OK] Content: %d page(s) in %s\n", r.Site.Pages, r.Site.ContentDir)
		} else {
			fmt.Fprintf(w, "  [ERROR] Content: no pages in %s\n", r.Site.ContentDir)
		}
		if r.Site.StaticFound {
			fmt.Fprintf(w, "  [OK] Static: %s\n", r.Site.StaticDir)
		} else {
			fmt.Fprintf(w, "  [OK] Static: none (%s not found)\n", r.Site.StaticDir)
		}
		if r.Site.TemplateOK {
			fmt.Fprintf(w, "  [OK] Template: %s\n", r.Site.Template)
		} else {
			fmt.Fprintf(w, "  [ERROR] Template: %s\n", r.Site.Template)
		}
		fmt.Fprintf(w, "  [OK] Output: %s\n", r.Site.OutputDir)
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Server")
		if r.Server.Available {
			fmt.Fprintf(w, "  [OK] Address: %s\n", r.Server.Addr)
		} else {
			fmt.Fprintf(w, "  [WARN] Address: %s in use\n", r.Server.Addr)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
