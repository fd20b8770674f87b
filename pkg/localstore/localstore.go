package localstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes uploaded files under a public base directory with UUID names
// so original file names never reach the filesystem.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes content to <baseDir>/<subdir>/<uuid><ext> and returns the
// public URL path for the stored file.
func (s *Store) Save(subdir, originalName string, content io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create upload directory: %v", err)
	}

	name := uuid.New().String() + filepath.Ext(originalName)
	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create file: %v", err)
	}

	if _, err := io.Copy(dst, content); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("unable to write file: %v", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("unable to write file: %v", err)
	}

	return "/" + subdir + "/" + name, nil
}
