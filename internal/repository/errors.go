package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrMissingReference marks a write that pointed at a row which does not
	// exist. It always comes wrapped together with ErrNotFound.
	ErrMissingReference = errors.New("missing reference")
)
