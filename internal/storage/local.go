// Package storage provides the file-storage collaborator: it accepts bytes
// and returns a URL the stored file can be fetched from.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

type FileStore interface {
	Store(data []byte, name string) (string, error)
}

// LocalStore writes files under a base directory and returns file:// URLs.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Store(data []byte, name string) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store file %s: %w", name, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return "file://" + abs, nil
}
