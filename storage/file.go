package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// FileStore is a Store persisted as a single JSON object file. Every
// operation re-reads the file, so concurrent sessions observe each other's
// writes; mutations hold an exclusive file lock and write atomically via a
// temp file and rename.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The file is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) lockPath() string {
	return s.path + ".lock"
}

// Get returns the stored value and whether the key exists.
func (s *FileStore) Get(key string) (string, bool, error) {
	data, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

// Set stores the value under key.
func (s *FileStore) Set(key, value string) error {
	return s.update(func(data map[string]string) {
		data[key] = value
	})
}

// Delete removes the key.
func (s *FileStore) Delete(key string) error {
	return s.update(func(data map[string]string) {
		delete(data, key)
	})
}

// Keys returns all stored keys.
func (s *FileStore) Keys() ([]string, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	return keys, nil
}

// Clear removes every key.
func (s *FileStore) Clear() error {
	return s.update(func(data map[string]string) {
		for key := range data {
			delete(data, key)
		}
	})
}

// read loads the full key-value map. A missing file is an empty store.
func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	data := map[string]string{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return data, nil
}

// update atomically reads, modifies, and rewrites the store under an
// exclusive lock.
func (s *FileStore) update(fn func(data map[string]string)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	data, err := s.read()
	if err != nil {
		return err
	}

	fn(data)

	return s.write(data)
}

// write serializes the map and replaces the store file atomically.
func (s *FileStore) write(data map[string]string) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(encoded)
	if closeErr := tmpFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp store file: %w", err)
	}

	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename store file: %w", err)
	}

	return nil
}
