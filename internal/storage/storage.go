package storage

import (
	"context"
	"io"
)

// Source resolves a locally captured image resource to readable data. It is
// the pipeline's view of the surrounding application's pick/capture
// capability; resource ids are opaque handles owned by the caller.
type Source interface {
	// GetReader returns a reader for the image at the given resource id
	GetReader(ctx context.Context, resourceID string) (io.ReadCloser, error)

	// Exists checks if an image exists at the given resource id
	Exists(ctx context.Context, resourceID string) (bool, error)
}
