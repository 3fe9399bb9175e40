package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// URLPrefix is the path under which the local store's files are served.
const URLPrefix = "/uploads"

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	name := filepath.Base(filename)
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return URLPrefix + "/" + name, nil
}

func (s *LocalStore) Remove(ctx context.Context, mediaURL string) error {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return fmt.Errorf("invalid media url %q: %w", mediaURL, err)
	}
	// The host is not checked: local URLs may have been made absolute.
	name, ok := objectName(u, URLPrefix)
	if !ok {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
