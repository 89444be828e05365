package racedb

import "errors"

var (
	// ErrNotFound indicates the requested race does not exist.
	ErrNotFound = errors.New("race not found")
)
