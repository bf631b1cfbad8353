package session

import "errors"

// Error definitions for the session package.
var (
	ErrProviderNotFound  = errors.New("engine provider not found in registry")
	ErrAlreadyRegistered = errors.New("engine provider is already registered in the registry")
)
