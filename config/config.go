package config

import (
	"os"

	"github.com/10imaging/serving/internal/envvar"
	"github.com/10imaging/serving/internal/xfs"
)

// Config holds the serving-side configuration: where exports live and how
// the execution engine is constructed.
type Config struct {
	Version string        `json:"version"           yaml:"version"`
	Exports ExportsConfig `json:"exports"           yaml:"exports"`
	Engine  EngineConfig  `json:"engine,omitempty"  yaml:"engine,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ExportsConfig locates the export directory tree.
type ExportsConfig struct {
	// BasePath is the directory holding versioned export directories.
	BasePath string `json:"base_path,omitempty" yaml:"base_path,omitempty"`

	// PinnedVersion pins a specific export version. Zero means latest.
	PinnedVersion int `json:"pinned_version,omitempty" yaml:"pinned_version,omitempty"`
}

// EngineConfig selects and tunes the execution engine. Options are
// engine-defined and passed through unmodified.
type EngineConfig struct {
	Provider string         `json:"provider,omitempty" yaml:"provider,omitempty"`
	Target   string         `json:"target,omitempty"   yaml:"target,omitempty"`
	Options  map[string]any `json:"options,omitempty"  yaml:"options,omitempty"`
}

// LoggingConfig configures file logging for entry points.
type LoggingConfig struct {
	ToFile bool   `json:"to_file,omitempty" yaml:"to_file,omitempty"`
	File   string `json:"file,omitempty"    yaml:"file,omitempty"`
}

// ResolveExportsPath returns the export base path.
// Precedence:
// 1. SERVING_EXPORTS_PATH environment variable.
// 2. Exports.BasePath field in the config.
// 3. Default exports path.
func (c *Config) ResolveExportsPath() string {
	if p := os.Getenv(envvar.ServingExportsPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if c.Exports.BasePath != "" {
		return xfs.ExpandTilde(c.Exports.BasePath)
	}
	return xfs.ExpandTilde(DefaultExportsPath())
}
