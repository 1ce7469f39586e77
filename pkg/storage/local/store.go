package local

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/pkg/config"
)

// Store keeps uploaded order forms on the local filesystem. Callers treat the
// returned paths as opaque handles.
type Store struct {
	root string
}

// New creates the blob root if needed and returns a store rooted there.
func New(cfg config.FilesConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("files dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", cfg.Dir, err)
	}
	return &Store{root: cfg.Dir}, nil
}

// Save writes the stream under a fresh name and returns the opaque handle.
// The original filename only contributes its extension.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s_%s%s", time.Now().UTC().Format("20060102150405"), uuid.NewString()[:8], ext)
	full := filepath.Join(s.root, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create blob %q: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write blob %q: %w", name, err)
	}
	return name, nil
}

// Path resolves a handle back to a filesystem path inside the root.
// Handles containing path separators are rejected.
func (s *Store) Path(handle string) (string, error) {
	if handle == "" {
		return "", errors.New("empty blob handle")
	}
	if handle != filepath.Base(handle) {
		return "", fmt.Errorf("invalid blob handle %q", handle)
	}
	return filepath.Join(s.root, handle), nil
}

// Open returns the stored blob for reading.
func (s *Store) Open(handle string) (io.ReadCloser, error) {
	full, err := s.Path(handle)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Remove deletes a stored blob. Missing blobs are not an error.
func (s *Store) Remove(handle string) error {
	full, err := s.Path(handle)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
