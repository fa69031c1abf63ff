package whitelist

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileSource reads whitelist entries from a YAML file containing a list
// of user ID strings.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a new source that reads from the given file path
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{
		fs:   fs,
		path: path,
	}
}

// LoadEntries implements Source. A missing file is created containing an
// empty list so operators have something to edit.
func (s *FileSource) LoadEntries() ([]string, error) {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("checking whitelist file: %w", err)
	}
	if !exists {
		if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return nil, fmt.Errorf("creating whitelist directory: %w", err)
		}
		if err := afero.WriteFile(s.fs, s.path, []byte("[]\n"), 0644); err != nil {
			return nil, fmt.Errorf("creating whitelist file: %w", err)
		}
		return []string{}, nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("reading whitelist file: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing whitelist file: %w", err)
	}
	if raw == nil {
		return []string{}, nil
	}

	seq, ok := raw.([]interface{})
	if !ok {
		return nil, ErrNotList
	}

	// YAML scalars may decode as non-strings (unquoted numeric IDs);
	// entries are compared as strings either way.
	entries := make([]string, 0, len(seq))
	for _, v := range seq {
		entries = append(entries, fmt.Sprintf("%v", v))
	}
	return entries, nil
}
