package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/embermedia/creatorsite/pkg/config"
	"github.com/embermedia/creatorsite/pkg/logging"
)

// DiskStore writes blobs under a local root and serves them back under
// a configured base URL
type DiskStore struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

// NewDiskStore creates a disk-backed blob store
func NewDiskStore(cfg *config.StorageConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &DiskStore{
		root:    cfg.Root,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logging.GetLogger().With(zap.String("component", "blob-store")),
	}, nil
}

// Root returns the filesystem root blobs are written under
func (s *DiskStore) Root() string {
	return s.root
}

// Save writes the blob under name and returns its public URL
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(name))
	if clean == "." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", fmt.Errorf("invalid blob path %q", name)
	}

	full := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	s.logger.Info("Blob stored", zap.String("path", clean))
	return s.baseURL + "/" + clean, nil
}
