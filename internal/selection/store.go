package selection

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the user's selected session ids as a JSON array of strings
// in a single file. The core engine only ever sees a snapshot of the ids;
// all mutation goes through the store.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns a snapshot of the selected ids. A missing file is an empty
// selection, not an error.
func (s *Store) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Save replaces the selection, writing atomically (temp file + rename).
func (s *Store) Save(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ids)
}

func (s *Store) save(ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".selection-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Add appends id to the selection if not already present and returns the
// updated snapshot.
func (s *Store) Add(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, existing := range ids {
		if existing == id {
			return ids, nil
		}
	}
	ids = append(ids, id)
	if err := s.save(ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Remove drops id from the selection and returns the updated snapshot.
func (s *Store) Remove(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return nil, err
	}
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if err := s.save(out); err != nil {
		return nil, err
	}
	return out, nil
}
