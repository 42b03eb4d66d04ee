// Package storage provides the durable string-keyed record store backing
// the session credential pair.
package storage

import (
	"os"
	"path/filepath"
)

// Records is a small string-keyed record store. Values are opaque bytes
// (JSON-encoded by callers). Get returns os.ErrNotExist when the key is
// absent; Delete of an absent key is not an error.
type Records interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// FileRecords stores each key as <dir>/<key>.json with mode 0600.
type FileRecords struct {
	dir string
}

// NewFileRecords creates a record store rooted at dir. The directory is
// created lazily on the first write.
func NewFileRecords(dir string) *FileRecords {
	return &FileRecords{dir: dir}
}

func (s *FileRecords) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the value for key.
func (s *FileRecords) Get(key string) ([]byte, error) {
	return os.ReadFile(s.path(key))
}

// Set writes the value for key atomically.
func (s *FileRecords) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	return writeFileAtomic(s.path(key), value, 0600)
}

// Delete removes the value for key.
func (s *FileRecords) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// writeFileAtomic writes data to a file atomically by writing to a temporary
// file first, fsyncing, and then renaming it to the target path. This prevents
// a crash mid-write from leaving a half-written record behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
