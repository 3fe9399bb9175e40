// Package storage keeps uploaded media (videos, thumbnails, logos) on local disk
// or in an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"vidshare/pkg/config"
)

// Store saves uploaded media and removes it again by the URL it handed out.
type Store interface {
	// Save stores r under filename and returns the URL the file is served from.
	// Local stores return a root-relative URL ("/uploads/<filename>").
	Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
	// Remove deletes the file a previously returned URL points at. URLs outside
	// the store are ignored. Uploads carry no owner, so removal trusts whoever
	// references the URL; this is a known weakness.
	Remove(ctx context.Context, mediaURL string) error
}

func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalStore(cfg.UploadDir)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// objectName returns the file name u points at when its path lies directly
// under prefix. Traversal out of prefix is resolved before the check.
func objectName(u *url.URL, prefix string) (string, bool) {
	p := path.Clean("/" + u.Path)
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(p, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
