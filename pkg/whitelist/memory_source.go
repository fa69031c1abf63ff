package whitelist

import "sync"

// MemorySource implements Source using an in-memory slice
type MemorySource struct {
	mu      sync.RWMutex
	entries []string
	err     error
}

// NewMemorySource creates a new MemorySource
func NewMemorySource(entries ...string) *MemorySource {
	return &MemorySource{entries: entries}
}

// LoadEntries implements Source
func (s *MemorySource) LoadEntries() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// SetEntries replaces the stored entries
func (s *MemorySource) SetEntries(entries ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// SetError makes subsequent loads fail with err
func (s *MemorySource) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
