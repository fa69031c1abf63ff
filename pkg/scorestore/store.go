package scorestore

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Store holds the single safe score record and its file-backed
// persistence. Every successful Set rewrites the whole document.
type Store struct {
	fs   afero.Fs
	path string
	now  func() time.Time

	record Record
}

// NewStore creates a new Store persisting to path on fs
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{
		fs:   fs,
		path: path,
		now:  time.Now,
	}
}

// Load reads the persisted record. A missing file is not an error, it
// just means no score has been set yet. Unreadable or malformed files
// leave the store empty and return the error for the caller to log.
func (s *Store) Load() error {
	s.record = Record{}

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("checking score file: %w", err)
	}
	if !exists {
		return nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("reading score file: %w", err)
	}
	if err := json.Unmarshal(data, &s.record); err != nil {
		s.record = Record{}
		return fmt.Errorf("parsing score file: %w", err)
	}
	return nil
}

// Get returns the current score and when it was last updated. ok is
// false if no score has been set.
func (s *Store) Get() (score int64, lastUpdate time.Time, ok bool) {
	if s.record.Score == nil {
		return 0, time.Time{}, false
	}
	if s.record.LastUpdate != nil {
		sec, frac := math.Modf(*s.record.LastUpdate)
		lastUpdate = time.Unix(int64(sec), int64(frac*float64(time.Second)))
	}
	return *s.record.Score, lastUpdate, true
}

// Set updates the score and its timestamp and persists the record. On
// persistence failure the in-memory record is rolled back so memory and
// disk never diverge.
func (s *Store) Set(score int64) error {
	if score < 0 {
		return ErrNegativeScore
	}

	prev := s.record
	ts := float64(s.now().UnixMicro()) / 1e6
	s.record = Record{Score: &score, LastUpdate: &ts}

	if err := s.persist(); err != nil {
		s.record = prev
		return err
	}
	return nil
}

// persist writes the record atomically via a temp file and rename
func (s *Store) persist() error {
	data, err := json.Marshal(s.record)
	if err != nil {
		return fmt.Errorf("encoding score record: %w", err)
	}
	data = append(data, '\n')

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating score directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing score file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("replacing score file: %w", err)
	}
	return nil
}
