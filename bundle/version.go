package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/10imaging/serving/internal/xfs"
)

// Export version directories are named with an 8-digit zero-padded
// monotonically increasing number, e.g. 00000042.
const versionDigits = 8

// FormatVersion renders a version number as its directory name.
func FormatVersion(version int) string {
	return fmt.Sprintf("%0*d", versionDigits, version)
}

// ParseVersion reports whether name is a valid version directory name and
// returns the version it encodes.
func ParseVersion(name string) (int, bool) {
	if len(name) != versionDigits {
		return 0, false
	}

	version := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		version = version*10 + int(c-'0')
	}

	return version, true
}

// ResolveExport locates a version directory under basePath without
// loading it: the pinned version when non-zero, otherwise the latest.
func ResolveExport(basePath string, pinned int) (version int, dir string, err error) {
	return resolveVersionDir(basePath, pinned)
}

// latestVersion scans basePath for version directories and returns the
// numerically largest one. Non-conforming entries are ignored.
func latestVersion(basePath string) (int, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNotFound, basePath, err)
	}

	best := -1
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if v, ok := ParseVersion(entry.Name()); ok && v > best {
			best = v
		}
	}

	if best < 0 {
		return 0, fmt.Errorf("%w: no version directory under %s", ErrNotFound, basePath)
	}

	return best, nil
}

// resolveVersionDir picks the pinned version if requested, otherwise the
// latest, and verifies the directory exists.
func resolveVersionDir(basePath string, pinned int) (int, string, error) {
	version := pinned
	if version == 0 {
		latest, err := latestVersion(basePath)
		if err != nil {
			return 0, "", err
		}
		version = latest
	}

	dir := filepath.Join(basePath, FormatVersion(version))
	if !xfs.DirExists(dir) {
		return 0, "", fmt.Errorf("%w: version %d under %s", ErrNotFound, version, basePath)
	}

	return version, dir, nil
}
