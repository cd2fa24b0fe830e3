package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is a bare file stem.
// Returns ErrInvalidAssetName if the name is blank or contains a path
// separator, a dot, a null byte or surrounding whitespace.
func ValidateAssetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") || strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
