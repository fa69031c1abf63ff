package whitelist

import "errors"

// ErrNotList indicates the whitelist resource parsed to something other
// than a sequence of entries.
var ErrNotList = errors.New("whitelist is not a list")

// Source represents a source of whitelist entries
type Source interface {
	// LoadEntries loads the raw list of authorized user IDs.
	// Returns ErrNotList if the backing data is not a sequence.
	LoadEntries() ([]string, error)
}
