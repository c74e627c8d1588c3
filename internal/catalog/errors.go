package catalog

import "errors"

var (
	// ErrEntryExists is returned by Insert when the id is already catalogued.
	ErrEntryExists = errors.New("catalog entry already exists")
	// ErrEntryNotFound is returned by writes that require an existing entry.
	ErrEntryNotFound = errors.New("catalog entry not found")
)
