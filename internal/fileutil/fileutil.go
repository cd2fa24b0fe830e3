// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNotDirectory  = errors.New("not a directory")
	ErrUnsafeReset   = errors.New("refusing to reset directory")
	ErrDestInsideSrc = errors.New("destination is inside source")
	ErrSymlinkLoop   = errors.New("symlink loop")
)

// CopyStats summarises a CopyTree run.
type CopyStats struct {
	Files int
	Bytes int64
}

// ResetDir removes dir and everything below it, then recreates it empty.
// Refuses the filesystem root, the current directory and any ancestor of
// the current directory, since those are never a build output.
func ResetDir(dir string) error {
	if err := checkResettable(dir); err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func checkResettable(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: empty path", ErrUnsafeReset)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeReset, err)
	}
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafeReset, dir)
	}

	wd, err := os.Getwd()
	if err == nil && isWithin(wd, abs) {
		return fmt.Errorf("%w: %s contains the working directory", ErrUnsafeReset, dir)
	}
	return nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// IsWithin reports whether path equals dir or lies below it, comparing
// absolute cleaned paths. Empty paths are never within anything.
func IsWithin(path, dir string) bool {
	if path == "" || dir == "" {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return isWithin(absPath, absDir)
}

// CopyTree recursively copies the contents of src into dst, creating
// directories as needed and overwriting existing files. Symlinks are
// followed; a link back to one of its own ancestors fails with
// ErrSymlinkLoop. File permissions are preserved.
func CopyTree(src, dst string) (CopyStats, error) {
	info, err := os.Stat(src)
	if err != nil {
		return CopyStats{}, err
	}
	if !info.IsDir() {
		return CopyStats{}, fmt.Errorf("%w: %s", ErrNotDirectory, src)
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return CopyStats{}, err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return CopyStats{}, err
	}
	realSrc, err := filepath.EvalSymlinks(src)
	if err != nil {
		return CopyStats{}, err
	}
	realSrc, err = filepath.Abs(realSrc)
	if err != nil {
		return CopyStats{}, err
	}
	if isWithin(absDst, absSrc) || isWithin(absDst, realSrc) {
		return CopyStats{}, fmt.Errorf("%w: %s in %s", ErrDestInsideSrc, dst, src)
	}

	c := &treeCopier{dst: absDst, active: []string{realSrc}}
	err = c.copyDir(src, dst)
	return c.stats, err
}

// treeCopier carries the state of one CopyTree run. active holds the
// resolved directories currently being copied, outermost first.
type treeCopier struct {
	dst    string
	active []string
	stats  CopyStats
}

func (c *treeCopier) copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}

		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if info.IsDir() {
				return c.copyLinkedDir(path, target)
			}
		}

		n, err := copyFile(path, target)
		if err != nil {
			return err
		}
		c.stats.Files++
		c.stats.Bytes += n
		return nil
	})
}

// copyLinkedDir copies the directory a symlink points to. WalkDir does not
// descend into linked directories on its own.
func (c *treeCopier) copyLinkedDir(link, dst string) error {
	resolved, err := filepath.EvalSymlinks(link)
	if err != nil {
		return err
	}
	if resolved, err = filepath.Abs(resolved); err != nil {
		return err
	}

	parent, err := filepath.EvalSymlinks(filepath.Dir(link))
	if err != nil {
		return err
	}
	if parent, err = filepath.Abs(parent); err != nil {
		return err
	}
	if isWithin(parent, resolved) {
		return fmt.Errorf("%w: %s points to %s", ErrSymlinkLoop, link, resolved)
	}
	for _, dir := range c.active {
		if isWithin(dir, resolved) {
			return fmt.Errorf("%w: %s points to %s", ErrSymlinkLoop, link, resolved)
		}
	}
	if isWithin(c.dst, resolved) {
		return fmt.Errorf("%w: %s in %s", ErrDestInsideSrc, c.dst, resolved)
	}

	c.active = append(c.active, resolved)
	defer func() { c.active = c.active[:len(c.active)-1] }()

	return c.copyDir(resolved, dst)
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src) // #nosec G304 -- walking a user-provided tree
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return 0, err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) // #nosec G304 -- destination under output dir
	if err != nil {
		return 0, err
	}

	n, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return n, fmt.Errorf("copying %s: %w", src, copyErr)
	}
	if closeErr != nil {
		return n, fmt.Errorf("closing %s: %w", dst, closeErr)
	}
	return n, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partially written page.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil { // #nosec G302 -- site output is world-readable
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "page" -> false (name)
//   - "./template.html" -> true (relative path)
//   - "/absolute/template.html" -> true (absolute)
//   - "C:\site\template.html" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
