package bundle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AssetsDirName is the asset subdirectory inside a version directory.
const AssetsDirName = "assets"

// ResolveAssetPath rewrites a relative asset filename into an absolute
// path under assetsDir. Absolute filenames and any path that would land
// outside assetsDir (parent-directory traversal in particular) are
// rejected.
func ResolveAssetPath(assetsDir, filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: empty filename", ErrInvalidAssetPath)
	}
	if filepath.IsAbs(filename) {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidAssetPath, filename)
	}

	clean := filepath.Clean(filename)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetPath, filename)
	}

	resolved := filepath.Join(assetsDir, clean)

	// Join cleans again; re-check that nothing escaped.
	rel, err := filepath.Rel(assetsDir, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetPath, filename)
	}

	return resolved, nil
}
