package whitelist

import (
	"errors"

	"safebot/pkg/logging"
)

// Store holds the in-memory whitelist of users allowed to change the
// safe score. Entries are loaded once at startup and read-only after
// that; mutation happens by editing the backing file and restarting.
type Store struct {
	source  Source
	entries []string
}

// NewStore creates a new Store backed by source
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// Load populates the store from its source. Loading is best effort: any
// failure degrades to an empty whitelist so startup never aborts over a
// bad config file.
func (s *Store) Load() {
	entries, err := s.source.LoadEntries()
	switch {
	case errors.Is(err, ErrNotList):
		logging.App.Warn("Whitelist is not a list, resetting to empty")
		s.entries = nil
	case err != nil:
		logging.App.Error("Failed to load whitelist", "error", err)
		s.entries = nil
	default:
		s.entries = entries
		logging.App.Info("Loaded whitelist", "entries", len(entries))
	}
}

// IsAuthorized reports whether userID is in the whitelist, by exact
// string match.
func (s *Store) IsAuthorized(userID string) bool {
	for _, entry := range s.entries {
		if entry == userID {
			return true
		}
	}
	return false
}

// Count returns the number of loaded entries
func (s *Store) Count() int {
	return len(s.entries)
}
