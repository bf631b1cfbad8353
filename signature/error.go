package signature

import "errors"

// Error definitions for the signature package.
var (
	ErrNotFound           = errors.New("signature not found")
	ErrNoDefault          = errors.New("no default signature declared")
	ErrTypeMismatch       = errors.New("signature variant does not match expected variant")
	ErrNoOutputs          = errors.New("signature declares no outputs")
	ErrUnknownLogicalName = errors.New("logical name not present in signature")
	ErrValueTypeMismatch  = errors.New("value type does not match declared tensor type")
)
