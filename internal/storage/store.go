// Package storage implements the drive group reconciliation core. This
// module handles loading and writing the structured configuration file and is
// the single writer of on-disk state.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"drivekeeper/internal/devices"
)

// configFileName is the on-disk configuration document name.
const configFileName = "storage.json"

// Store reads and writes the storage configuration at a fixed path. It is
// the only component that touches the on-disk document; the lifecycle
// manager always pairs Save with a reload so serialization bugs surface
// immediately instead of silently drifting from what is truly on disk.
type Store struct {
	path string
}

// NewStore returns a store bound to the given configuration file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the configuration file path this store is bound to.
func (s *Store) Path() string {
	return s.path
}

// DefaultPath returns the conventional configuration file location,
// ~/.config/drivekeeper/storage.json, creating the directory if needed. In
// test mode the path is redirected into the system temp directory so
// automated tests never touch the real configuration.
func DefaultPath() (string, error) {
	if devices.TestMode() {
		return filepath.Join(os.TempDir(), "drivekeeper", configFileName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "drivekeeper")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, configFileName), nil
}

// Load reads the configuration document. A missing file yields an empty
// configuration, not an error — that is the designed trigger for first-run
// setup. A plain load never renumbers: gaps from a hand-edited file survive
// until the next write-triggering operation.
func (s *Store) Load() (*StorageConfiguration, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStorageConfiguration(), nil
		}
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	var config StorageConfiguration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	if config.Groups == nil {
		config.Groups = make(GroupMap)
	}

	return &config, nil
}

// Save writes the configuration document atomically: the full document is
// serialized in memory, written to a temp file, then renamed into place.
// Groups serialize in ascending numeric key order for readability.
func (s *Store) Save(config *StorageConfiguration) error {
	jsonData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, 0644); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath) // Clean up temp file on failure
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	return nil
}
