package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// ErrServeListen indicates the preview server could not bind its address.
var ErrServeListen = errors.New("failed to start preview server")

// Preview server timing.
const (
	rebuildDebounce = 300 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// listenError keeps the address for hints while matching ErrServeListen.
type listenError struct {
	addr string
	err  error
}

func (e *listenError) Error() string {
	return fmt.Sprintf("%v on %s: %v", ErrServeListen, e.addr, e.err)
}

func (e *listenError) Unwrap() []error { return []error{ErrServeListen, e.err} }

// runServe builds the site, serves the output directory and rebuilds on
// change until the context is cancelled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args)
	if err != nil {
		return err
	}
	env.applyLogLevel(flags.build.common)

	cfg, err := resolveConfig(&flags.build, positional, env)
	if err != nil {
		return err
	}
	setIfNotEmpty(&cfg.Serve.Addr, flags.addr)

	opts := buildOptions{quiet: true, verbose: flags.build.common.verbose}
	rebuild := func() {
		report, err := buildSite(ctx, cfg, env, opts)
		if err != nil {
			env.Logger.Error("build failed", logError(err))
			return
		}
		env.Logger.Info("site built", logCount(report.Pages), logDuration(report.Duration))
	}

	// A failed initial build still serves whatever exists; the next save retries.
	rebuild()

	ln, err := net.Listen("tcp", cfg.Serve.Addr)
	if err != nil {
		return &listenError{addr: cfg.Serve.Addr, err: err}
	}

	srv := &http.Server{
		Handler:           newPreviewRouter(cfg.Output.Dir, cfg.Output.BasePath, env.Logger),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			env.Logger.Error("preview server stopped", logError(err))
		}
	}()
	env.Logger.Info("preview server listening",
		logAddr(ln.Addr().String()),
		slog.String("url", previewURL(ln.Addr().String(), cfg.Output.BasePath)))

	watcher, err := setupWatcher(watchRoots(cfg), cfg.Output.Dir, env.Logger)
	if err != nil {
		_ = srv.Close()
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq, trigger := newRebuildDebouncer(rebuildDebounce)
	startRebuildWorker(ctx, rebuildReq, func() {
		env.Logger.Info("change detected; rebuilding site")
		rebuild()
	})

	return runPreviewLoop(ctx, watcher, cfg.Output.Dir, trigger, srv, env.Logger)
}

// newPreviewRouter serves the output directory under the base path, so
// links rewritten for a project page resolve locally too.
func newPreviewRouter(outputDir, basePath string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelDebug),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	prefix := servePrefix(basePath)
	files := http.FileServer(http.Dir(outputDir))
	if strip := strings.TrimSuffix(prefix, "/"); strip != "" {
		files = http.StripPrefix(strip, files)
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, prefix, http.StatusFound)
		})
	}
	r.Handle(prefix+"*", files)

	return r
}

// servePrefix is the URL path the site is mounted at. A base path that is an
// absolute URL contributes only its path.
func servePrefix(basePath string) string {
	p := pipeline.NormalizeBasePath(basePath)
	if _, rest, ok := strings.Cut(p, "://"); ok {
		if i := strings.Index(rest, "/"); i >= 0 {
			return rest[i:]
		}
		return "/"
	}
	return p
}

// previewURL formats the browsable address of the site.
func previewURL(addr, basePath string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + servePrefix(basePath)
	}
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + servePrefix(basePath)
}

// watchRoots lists the existing directories whose changes trigger a rebuild.
func watchRoots(cfg *config.Config) []string {
	candidates := []string{cfg.Input.ContentDir, cfg.Input.StaticDir, cfg.Assets.BasePath}
	if fileutil.IsFilePath(cfg.Assets.Template) {
		candidates = append(candidates, filepath.Dir(cfg.Assets.Template))
	}

	var roots []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if c == "" || !fileutil.DirExists(c) {
			continue
		}
		clean := filepath.Clean(c)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		roots = append(roots, clean)
	}
	return roots
}

// setupWatcher creates a watcher covering every directory below roots,
// except outputDir: a rebuild writing there must not trigger another one.
func setupWatcher(roots []string, outputDir string, logger *slog.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, root := range roots {
		addDirsRecursive(watcher, root, outputDir, logger)
	}
	return watcher, nil
}

// newRebuildDebouncer returns a request channel and a trigger that sends on
// it once no further trigger arrived for delay.
func newRebuildDebouncer(delay time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	return rebuildReq, trigger
}

// startRebuildWorker runs rebuilds one at a time. Requests arriving during a
// rebuild coalesce in the one-slot channel.
func startRebuildWorker(ctx context.Context, rebuildReq <-chan struct{}, rebuild func()) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				rebuild()
			}
		}
	}()
}

// runPreviewLoop handles filesystem events and graceful shutdown.
func runPreviewLoop(ctx context.Context, watcher *fsnotify.Watcher, outputDir string, trigger func(), srv *http.Server, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down preview server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("preview server shutdown error", logError(err))
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(watcher, ev, outputDir, trigger, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logError(err))
		}
	}
}

// handleFileEvent processes a filesystem event and triggers a rebuild if needed.
func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, outputDir string, trigger func(), logger *slog.Logger) {
	if shouldIgnoreEvent(ev.Name) || fileutil.IsWithin(ev.Name, outputDir) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(watcher, ev.Name, outputDir, logger)
		}
	}
	logger.Debug("file change detected", logPath(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// addDirsRecursive watches root and every directory below it, skipping the
// subtree at outputDir.
func addDirsRecursive(w *fsnotify.Watcher, root, outputDir string, logger *slog.Logger) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if fileutil.IsWithin(path, outputDir) {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				logger.Warn("watch add failed", logPath(path), logError(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent reports whether a path is an editor or OS artefact
// that must not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasSuffix(base, ".tmp"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}
