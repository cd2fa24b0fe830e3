package assets

import (
	"fmt"
	"os"
)

// Built-in asset names.
const (
	DefaultTemplateName = "page"
	DefaultStyleName    = "index"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTemplate loads a page template by name using the default embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// LoadStyle loads a stylesheet by name using the default embedded loader.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplateFile reads a page template from an explicit file path, the way
// a template.html at the project root is used.
// Returns ErrTemplateNotFound if the file does not exist.
func LoadTemplateFile(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- template path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}
