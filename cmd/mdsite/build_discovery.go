package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// PageToBuild represents a single markdown source and its generated page.
type PageToBuild struct {
	SourcePath string
	OutputPath string
}

// discoverPages finds every markdown file under contentDir and maps it to
// the same relative location under outputDir with an .html extension.
// Hidden files and directories are skipped, and so is outputDir when it
// sits inside contentDir.
func discoverPages(contentDir, outputDir string) ([]PageToBuild, error) {
	var pages []PageToBuild

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() && path != contentDir && fileutil.IsWithin(path, outputDir) {
			return filepath.SkipDir
		}
		if path != contentDir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		pages = append(pages, PageToBuild{
			SourcePath: path,
			OutputPath: filepath.Join(outputDir, htmlName(rel)),
		})
		return nil
	})

	return pages, err
}

// isMarkdown reports whether the file has a .md or .markdown extension,
// in any letter case.
func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// htmlName swaps the markdown extension of a relative path for .html.
func htmlName(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
}
