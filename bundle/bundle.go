// Package bundle locates versioned export directories on disk and turns
// them into runnable inference handles.
package bundle

import (
	"github.com/10imaging/serving/metagraph"
	"github.com/10imaging/serving/session"
	"github.com/10imaging/serving/signature"
)

// Bundle is a loaded export: the execution engine with its variables
// restored and initialization already run, plus the meta graph and the
// on-disk locations it came from. Immutable after construction; only the
// engine's internal state changes, and only through Run calls.
type Bundle struct {
	id        string
	version   int
	exportDir string
	assetsDir string
	meta      *metagraph.MetaGraph
	engine    session.Engine
}

// ID returns an identifier unique to this load, used in log fields.
func (b *Bundle) ID() string { return b.id }

// Version returns the export version that was loaded.
func (b *Bundle) Version() int { return b.version }

// ExportDir returns the version directory the bundle was loaded from.
func (b *Bundle) ExportDir() string { return b.exportDir }

// AssetsDir returns the absolute path of the export's assets directory.
func (b *Bundle) AssetsDir() string { return b.assetsDir }

// MetaGraph returns the deserialized meta graph.
func (b *Bundle) MetaGraph() *metagraph.MetaGraph { return b.meta }

// Engine returns the execution engine. Safe for concurrent Run use.
func (b *Bundle) Engine() session.Engine { return b.engine }

// Signatures returns the signature store embedded in the meta graph.
func (b *Bundle) Signatures() signature.Collection { return b.meta.Signatures }

// AssetPath resolves a relative asset filename against the bundle's
// assets directory.
func (b *Bundle) AssetPath(filename string) (string, error) {
	return ResolveAssetPath(b.assetsDir, filename)
}

// Close releases the execution engine and everything it owns. The bundle
// must not be used afterwards.
func (b *Bundle) Close() error {
	return b.engine.Close()
}
