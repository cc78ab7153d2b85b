// Package storage persists uploaded document files on local disk and issues
// expiring signed URLs for them, keeping the serving path off the API's
// authenticated surface.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docuchat-be/internal/pkg/apperrors"
)

// LocalStore writes files under a base directory. Storage paths are opaque
// keys of the form "documents/<uuid>.<ext>"; callers persist the key, never
// a filesystem path.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "documents"), 0o755); err != nil {
		return nil, &apperrors.StorageError{Err: fmt.Errorf("create storage dir: %w", err)}
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save writes the file and returns its storage path.
func (s *LocalStore) Save(fileBytes []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	storagePath := fmt.Sprintf("documents/%s%s", uuid.New(), ext)

	if err := os.WriteFile(s.resolve(storagePath), fileBytes, 0o644); err != nil {
		return "", &apperrors.StorageError{Err: fmt.Errorf("write file: %w", err)}
	}
	return storagePath, nil
}

// Read returns the stored bytes for a storage path.
func (s *LocalStore) Read(storagePath string) ([]byte, error) {
	resolved, err := s.safeResolve(storagePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &apperrors.StorageError{Err: fmt.Errorf("read file: %w", err)}
	}
	return data, nil
}

// Delete removes a stored file. Missing files are not an error: deletion is
// retried by document cleanup and must be idempotent.
func (s *LocalStore) Delete(storagePath string) error {
	resolved, err := s.safeResolve(storagePath)
	if err != nil {
		return err
	}
	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return &apperrors.StorageError{Err: fmt.Errorf("delete file: %w", err)}
	}
	return nil
}

func (s *LocalStore) resolve(storagePath string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(storagePath))
}

// safeResolve rejects keys that would escape the base directory.
func (s *LocalStore) safeResolve(storagePath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(storagePath))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", &apperrors.StorageError{Err: fmt.Errorf("invalid storage path: %s", storagePath)}
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
