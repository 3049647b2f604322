// Package storage provides the backends where uploaded PDF files live.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/compras/backend/internal/application/archivo"
	"github.com/compras/backend/internal/domain/shared"
)

// Ensure LocalStore implements archivo.Store
var _ archivo.Store = (*LocalStore)(nil)

// LocalStore keeps uploaded files as direct children of a base directory.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed and returns a store
// rooted at it.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		return nil, errors.New("storage base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// resolve maps a flat filename to its path under the base directory.
// Names carrying separators or traversal segments are rejected here as a
// second line of defense behind the application-level validation.
func (s *LocalStore) resolve(filename string) (string, error) {
	if filename == "" {
		return "", shared.ErrInvalidInput
	}
	if strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return "", shared.ErrInvalidInput
	}
	return filepath.Join(s.baseDir, filename), nil
}

// Save writes the file under the base directory, replacing previous content
func (s *LocalStore) Save(_ context.Context, filename string, r io.Reader, _ string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return f.Close()
}

// Delete removes the file, mapping an absent file to shared.ErrNotFound.
// Under concurrent deletes of the same name the filesystem guarantees only
// one caller sees success.
func (s *LocalStore) Delete(_ context.Context, filename string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether the file is present
func (s *LocalStore) Exists(_ context.Context, filename string) (bool, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}
