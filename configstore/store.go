package configstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jovermann/pvview/tsdberr"
)

// DefaultDashboard is the reserved dashboard name a PUT may not overwrite.
const DefaultDashboard = "Default"

// Store persists named JSON blobs (dashboards, the settings document) to a
// directory, one file per document, written atomically via a temp file in
// the same directory followed by os.Rename.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it if necessary.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("configstore: creating %s: %w", dir, tsdberr.ErrIO)
	}
	return &Store{dir: dir}, nil
}

// Load reads name's raw JSON bytes. It reports tsdberr.ErrNotFound if the
// file does not exist.
func (s *Store) Load(name string) (json.RawMessage, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("configstore: %s not found: %w", name, tsdberr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("configstore: reading %s: %w", name, tsdberr.ErrIO)
	}
	return data, nil
}

// Save atomically replaces name's contents with data: data.
func (s *Store) Save(name string, data json.RawMessage) error {
	if !json.Valid(data) {
		return fmt.Errorf("configstore: %s: invalid JSON payload: %w", name, tsdberr.ErrBadRequest)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("configstore: creating temp file for %s: %w", name, tsdberr.ErrIO)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("configstore: writing %s: %w", name, tsdberr.ErrIO)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("configstore: syncing %s: %w", name, tsdberr.ErrIO)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("configstore: closing %s: %w", name, tsdberr.ErrIO)
	}
	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		return fmt.Errorf("configstore: renaming into place for %s: %w", name, tsdberr.ErrIO)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
