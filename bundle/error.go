package bundle

import "errors"

// Error definitions for the bundle package. Loading is fail-fast: each
// sentinel names the first step that went wrong, and none is retried.
var (
	ErrNotFound         = errors.New("export not found")
	ErrCorruptFormat    = errors.New("export format is corrupt")
	ErrRestore          = errors.New("variable restoration failed")
	ErrInitialization   = errors.New("initialization operation failed")
	ErrInvalidAssetPath = errors.New("asset path escapes the assets directory")
)
