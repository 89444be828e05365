package registrationdb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested registration does not exist.
	ErrNotFound = errors.New("registration not found")
)
