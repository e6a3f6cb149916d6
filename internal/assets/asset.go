package assets

import (
	"context"
	"io"
	"time"
)

// FileAsset represents a stored file in the platform's asset bucket.
type FileAsset struct {
	ID          string
	Name        string    // original file name as provided by the admin
	Path        string    // object key within the bucket
	ContentType string
	Size        int64
	Tag         string // optional grouping tag, e.g. "help-center"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AssetUpload describes a file to be pushed to the remote asset store.
type AssetUpload struct {
	Name        string
	ContentType string
	Size        int64
	Tag         string
	Body        io.Reader
}

// Store abstracts the remote asset storage. Implementations persist the file
// content and return a descriptor for the stored asset.
type Store interface {
	// Upload stores the file and returns its descriptor.
	Upload(ctx context.Context, upload AssetUpload) (*FileAsset, error)
}
