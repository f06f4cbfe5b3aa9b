package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage writes published artifacts to the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Ensure the base directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Publish writes data under a fixed name, replacing any previous version.
// Readers never observe a partially written file.
func (s *LocalStorage) Publish(name string, data []byte) (string, error) {
	rel, err := s.clean(name)
	if err != nil {
		return "", err
	}
	filePath := filepath.Join(s.basePath, rel)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), "."+filepath.Base(filePath)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return "", fmt.Errorf("failed to publish file: %w", err)
	}
	return rel, nil
}

// Archive saves a timestamped copy under subDir/YYYY/MM and returns its
// relative path
func (s *LocalStorage) Archive(data []byte, filename string, subDir string) (string, error) {
	dir := filepath.Join(s.basePath, subDir, time.Now().Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filepath.Base(filename), ext)
	uniqueFilename := fmt.Sprintf("%s_%s_%s%s", stem, time.Now().Format("20060102T150405"), generateID(), ext)
	filePath := filepath.Join(dir, uniqueFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath, _ := filepath.Rel(s.basePath, filePath)
	return relPath, nil
}

// Read returns the contents of a stored file
func (s *LocalStorage) Read(relativePath string) ([]byte, error) {
	rel, err := s.clean(relativePath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.basePath, rel))
}

// Delete removes a file
func (s *LocalStorage) Delete(relativePath string) error {
	rel, err := s.clean(relativePath)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.basePath, rel))
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	rel, err := s.clean(relativePath)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(s.basePath, rel))
	return err == nil
}

// GetFullPath returns the absolute path for serving files
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, relativePath)
}

// BasePath returns the storage root
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// clean rejects paths that escape the storage root
func (s *LocalStorage) clean(name string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(name))
	if rel == "." || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage path %q", name)
	}
	return rel, nil
}

// generateID creates a short unique suffix for archived files
func generateID() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
