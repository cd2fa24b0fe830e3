package fileutil_test

// Notes:
// - ResetDir tests that exercise the working-directory guard use absolute
//   paths and never chdir, so they can run in parallel.
// - WriteFileAtomic write and close error branches are not tested: triggering
//   disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// writeFile creates path (and parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestResetDir
// ---------------------------------------------------------------------------

func TestResetDir(t *testing.T) {
	t.Parallel()

	t.Run("removes existing content", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "public")
		writeFile(t, filepath.Join(dir, "stale", "old.html"), "old")

		if err := fileutil.ResetDir(dir); err != nil {
			t.Fatalf("ResetDir() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("ResetDir() left %d entries", len(entries))
		}
	})

	t.Run("creates missing directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "a", "b")
		if err := fileutil.ResetDir(dir); err != nil {
			t.Fatalf("ResetDir() error = %v", err)
		}
		if !fileutil.DirExists(dir) {
			t.Error("ResetDir() did not create directory")
		}
	})

	t.Run("refuses unsafe targets", func(t *testing.T) {
		t.Parallel()

		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Getwd() error = %v", err)
		}
		root := "/"
		if runtime.GOOS == "windows" {
			root = `C:\`
		}

		for _, dir := range []string{"", "  ", ".", wd, filepath.Dir(wd), root} {
			if err := fileutil.ResetDir(dir); !errors.Is(err, fileutil.ErrUnsafeReset) {
				t.Errorf("ResetDir(%q) error = %v, want ErrUnsafeReset", dir, err)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestCopyTree
// ---------------------------------------------------------------------------

func TestCopyTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "index.css"), "body{}")
	writeFile(t, filepath.Join(src, "images", "tolkien.png"), "PNG")
	writeFile(t, filepath.Join(src, "images", "deep", "x.txt"), "xyz")
	if err := os.MkdirAll(filepath.Join(src, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "public")
	stats, err := fileutil.CopyTree(src, dst)
	if err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	if stats.Files != 3 {
		t.Errorf("stats.Files = %d, want 3", stats.Files)
	}
	if stats.Bytes != int64(len("body{}")+len("PNG")+len("xyz")) {
		t.Errorf("stats.Bytes = %d, want %d", stats.Bytes, len("body{}PNGxyz"))
	}

	for rel, want := range map[string]string{
		"index.css":          "body{}",
		"images/tolkien.png": "PNG",
		"images/deep/x.txt":  "xyz",
	} {
		if got := readFile(t, filepath.Join(dst, filepath.FromSlash(rel))); got != want {
			t.Errorf("%s = %q, want %q", rel, got, want)
		}
	}
	if !fileutil.DirExists(filepath.Join(dst, "empty")) {
		t.Error("empty directory not copied")
	}
}

func TestCopyTree_OverwritesExisting(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "new")
	writeFile(t, filepath.Join(dst, "a.txt"), "old content that is longer")

	if _, err := fileutil.CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "a.txt")); got != "new" {
		t.Errorf("a.txt = %q, want %q", got, "new")
	}
}

func TestCopyTree_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()
		_, err := fileutil.CopyTree(filepath.Join(t.TempDir(), "nope"), t.TempDir())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("CopyTree() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("source is a file", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, file, "x")
		_, err := fileutil.CopyTree(file, t.TempDir())
		if !errors.Is(err, fileutil.ErrNotDirectory) {
			t.Errorf("CopyTree() error = %v, want ErrNotDirectory", err)
		}
	})

	t.Run("destination inside source", func(t *testing.T) {
		t.Parallel()
		src := t.TempDir()
		_, err := fileutil.CopyTree(src, filepath.Join(src, "public"))
		if !errors.Is(err, fileutil.ErrDestInsideSrc) {
			t.Errorf("CopyTree() error = %v, want ErrDestInsideSrc", err)
		}
	})
}

// symlinkOrSkip creates a symlink or skips where the platform refuses them.
func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestCopyTree_Symlinks(t *testing.T) {
	t.Parallel()

	t.Run("linked directory is copied", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "real", "theme.css"), "a{}")
		writeFile(t, filepath.Join(root, "real", "fonts", "x.woff"), "font")
		writeFile(t, filepath.Join(root, "static", "index.css"), "body{}")
		symlinkOrSkip(t, filepath.Join("..", "real"), filepath.Join(root, "static", "linked"))

		dst := filepath.Join(root, "public")
		stats, err := fileutil.CopyTree(filepath.Join(root, "static"), dst)
		if err != nil {
			t.Fatalf("CopyTree() error = %v", err)
		}

		if stats.Files != 3 {
			t.Errorf("stats.Files = %d, want 3", stats.Files)
		}
		if got := readFile(t, filepath.Join(dst, "linked", "theme.css")); got != "a{}" {
			t.Errorf("linked/theme.css = %q, want %q", got, "a{}")
		}
		if got := readFile(t, filepath.Join(dst, "linked", "fonts", "x.woff")); got != "font" {
			t.Errorf("linked/fonts/x.woff = %q, want %q", got, "font")
		}
	})

	t.Run("linked file is copied", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "shared", "logo.svg"), "<svg/>")
		symlinkOrSkip(t, filepath.Join(root, "shared", "logo.svg"), filepath.Join(root, "static", "logo.svg"))

		dst := filepath.Join(root, "public")
		if _, err := fileutil.CopyTree(filepath.Join(root, "static"), dst); err != nil {
			t.Fatalf("CopyTree() error = %v", err)
		}
		if got := readFile(t, filepath.Join(dst, "logo.svg")); got != "<svg/>" {
			t.Errorf("logo.svg = %q, want %q", got, "<svg/>")
		}
	})

	t.Run("link to ancestor", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "static", "a.txt"), "a")
		symlinkOrSkip(t, "..", filepath.Join(root, "static", "sub", "up"))

		_, err := fileutil.CopyTree(filepath.Join(root, "static"), filepath.Join(root, "public"))
		if !errors.Is(err, fileutil.ErrSymlinkLoop) {
			t.Errorf("CopyTree() error = %v, want ErrSymlinkLoop", err)
		}
	})

	t.Run("links pointing at each other", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a", "a.txt"), "a")
		writeFile(t, filepath.Join(root, "b", "b.txt"), "b")
		symlinkOrSkip(t, filepath.Join("..", "b"), filepath.Join(root, "a", "to-b"))
		symlinkOrSkip(t, filepath.Join("..", "a"), filepath.Join(root, "b", "to-a"))

		_, err := fileutil.CopyTree(filepath.Join(root, "a"), filepath.Join(root, "public"))
		if !errors.Is(err, fileutil.ErrSymlinkLoop) {
			t.Errorf("CopyTree() error = %v, want ErrSymlinkLoop", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestIsWithin
// ---------------------------------------------------------------------------

func TestIsWithin(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	tests := []struct {
		name      string
		path, dir string
		want      bool
	}{
		{"same", base, base, true},
		{"child", filepath.Join(base, "site", "content"), filepath.Join(base, "site"), true},
		{"unclean child", filepath.Join(base, "site") + "/./content/", filepath.Join(base, "site"), true},
		{"parent", filepath.Join(base, "site"), filepath.Join(base, "site", "content"), false},
		{"sibling with shared prefix", filepath.Join(base, "site-content"), filepath.Join(base, "site"), false},
		{"relative child", "site/content", "site", true},
		{"relative sibling", "content", "public", false},
		{"empty path", "", base, false},
		{"empty dir", base, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsWithin(tt.path, tt.dir); got != tt.want {
				t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "blog", "index.html")

	if err := fileutil.WriteFileAtomic(path, []byte("<h1>one</h1>")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("<h1>two</h1>")); err != nil {
		t.Fatalf("WriteFileAtomic() second write error = %v", err)
	}
	if got := readFile(t, path); got != "<h1>two</h1>" {
		t.Errorf("content = %q, want %q", got, "<h1>two</h1>")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the page (temp file leaked)", len(entries))
	}
}

// ---------------------------------------------------------------------------
// Predicates
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	writeFile(t, file, "# A")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "nope.md"), false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	writeFile(t, file, "# A")

	if !fileutil.DirExists(dir) {
		t.Errorf("DirExists(%q) = false, want true", dir)
	}
	if fileutil.DirExists(file) {
		t.Errorf("DirExists(%q) = true, want false", file)
	}
	if fileutil.DirExists(filepath.Join(dir, "nope")) {
		t.Error("DirExists(missing) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"page", false},
		{"my-template", false},
		{"./template.html", true},
		{"../shared/page.html", true},
		{"/abs/page.html", true},
		{`C:\site\page.html`, true},
		{"", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/site/", true},
		{"http://localhost:8888", true},
		{"/repo/", false},
		{"ftp://example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
