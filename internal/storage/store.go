package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidPath = errors.New("invalid storage path")

// Store keeps uploaded files and hands out public URLs for them.
type Store interface {
	Put(ctx context.Context, objectPath string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
	URL(objectPath string) string
	PathFromURL(rawURL string) string
}

// FileStore stores objects under a directory that the API server exposes at
// baseURL.
type FileStore struct {
	root    string
	baseURL string
}

func NewFileStore(root, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}

	return &FileStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) resolve(objectPath string) (string, error) {
	clean := path.Clean("/" + objectPath)
	if clean == "/" || clean != "/"+objectPath {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}

	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *FileStore) Put(_ context.Context, objectPath string, data []byte) (string, error) {
	full, err := s.resolve(objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating object directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("writing object: %w", err)
	}

	log.WithFields(log.Fields{"path": objectPath, "bytes": len(data)}).Debug("stored object")

	return s.URL(objectPath), nil
}

func (s *FileStore) Delete(_ context.Context, objectPath string) error {
	full, err := s.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing object: %w", err)
	}

	return nil
}

func (s *FileStore) URL(objectPath string) string {
	return s.baseURL + "/" + objectPath
}

func (s *FileStore) PathFromURL(rawURL string) string {
	return PathFromURL(s.baseURL, rawURL)
}
