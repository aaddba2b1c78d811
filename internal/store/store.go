// Package store persists restaurant records as one indented JSON file per
// restaurant. The raw and processed stores are two instances over different
// directories.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"restokb/internal/models"
)

// Store reads and writes restaurant record files under a single directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the record as indented JSON under the given identifier,
// typically the restaurant's extracted name.
func (s *Store) Save(name string, r *models.Restaurant) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}

// Read returns the raw bytes of a record.
func (s *Store) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", name, err)
	}

	return data, nil
}

// Load reads and decodes a record without validating it.
func (s *Store) Load(name string) (*models.Restaurant, error) {
	data, err := s.Read(name)
	if err != nil {
		return nil, err
	}

	return models.ParseRestaurant(data)
}

// List returns the identifiers of all records in the store, sorted.
// Non-JSON files and the sample record are ignored.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		if name == "sample" {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

func (s *Store) path(name string) string {
	// Restaurant names become file names; strip anything path-hostile.
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '-'
		}

		return r
	}, name)

	return filepath.Join(s.dir, safe+".json")
}
