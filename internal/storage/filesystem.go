package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FilesystemSource implements Source for images captured to a local directory
type FilesystemSource struct {
	baseDir string
}

// NewFilesystemSource creates a new filesystem image source
func NewFilesystemSource(baseDir string) (*FilesystemSource, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FilesystemSource{
		baseDir: baseDir,
	}, nil
}

// GetReader returns a reader for the image at the given resource id
func (fs *FilesystemSource) GetReader(ctx context.Context, resourceID string) (io.ReadCloser, error) {
	path := filepath.Join(fs.baseDir, resourceID)

	// Security: prevent directory traversal
	if !filepath.HasPrefix(filepath.Clean(path), filepath.Clean(fs.baseDir)) {
		return nil, fmt.Errorf("invalid resource id: path traversal detected")
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found: %s", resourceID)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	return file, nil
}

// Exists checks if an image exists at the given resource id
func (fs *FilesystemSource) Exists(ctx context.Context, resourceID string) (bool, error) {
	path := filepath.Join(fs.baseDir, resourceID)

	// Security: prevent directory traversal
	if !filepath.HasPrefix(filepath.Clean(path), filepath.Clean(fs.baseDir)) {
		return false, fmt.Errorf("invalid resource id: path traversal detected")
	}

	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat image: %w", err)
	}

	return true, nil
}
