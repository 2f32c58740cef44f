package repositories

import "errors"

// Sentinel errors shared by every repository. Handlers translate these into
// 404 and 409 responses.
var (
	// ErrNotFound reports that no row matched the lookup.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a write rejected by a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)
