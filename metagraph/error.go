package metagraph

import "errors"

// ErrCorrupt reports that the meta graph artifact could not be decoded.
var ErrCorrupt = errors.New("meta graph artifact is corrupt")
