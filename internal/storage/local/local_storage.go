// Package local stores uploaded decks on the local filesystem under a fixed
// directory, keyed by document identity.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"slidetutor/internal/domain"
	"slidetutor/internal/port"
)

type localStorage struct {
	root string
}

// NewLocalStorage creates an ObjectStorage rooted at dir, creating it if needed.
func NewLocalStorage(dir string) (port.ObjectStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir %s: %w", dir, err)
	}
	return &localStorage{root: dir}, nil
}

func (s *localStorage) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *localStorage) Upload(_ context.Context, input port.UploadInput) error {
	dst := s.path(input.Key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("local upload: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("local upload: %w", err)
	}
	if _, err := io.Copy(f, input.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("local upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("local upload: %w", err)
	}
	return nil
}

func (s *localStorage) Download(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("local download: %w", err)
	}
	return data, nil
}

func (s *localStorage) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}
