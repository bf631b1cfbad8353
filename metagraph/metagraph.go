// Package metagraph models the serialized graph-plus-metadata artifact an
// export writer places at the root of a versioned export directory.
package metagraph

import (
	"github.com/10imaging/serving/signature"
)

// MetaGraphFilename is the artifact's name inside a version directory.
const MetaGraphFilename = "export.meta"

// AssetBinding associates a graph tensor (expected to hold a filename at
// run time) with a file stored relative to the export's assets directory.
type AssetBinding struct {
	TensorName string
	Filename   string
}

// MetaGraph is the deserialized export artifact: the opaque graph
// definition, the signature store, asset bindings, and the operation
// names the loader drives during restoration and initialization.
type MetaGraph struct {
	// GraphDef is the serialized graph definition, opaque to this layer
	// and handed verbatim to the engine factory.
	GraphDef []byte

	// Signatures maps signature name to signature.
	Signatures signature.Collection

	// InitOp, when non-empty, names a no-input no-output operation run
	// exactly once after variable restoration.
	InitOp string

	// RestoreOp names the operation that restores variables from shard
	// files. Empty in legacy exports whose graphs restore on first use.
	RestoreOp string

	// ShardPatternTensor names the tensor fed with the shard file path
	// pattern before RestoreOp is run.
	ShardPatternTensor string

	// Assets lists the asset bindings to hydrate before restore and
	// initialization.
	Assets []AssetBinding
}

// Signature resolves a signature by name, empty meaning the default.
func (m *MetaGraph) Signature(name string) (signature.Signature, error) {
	return m.Signatures.Resolve(name)
}
