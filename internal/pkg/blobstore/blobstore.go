package blobstore

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Store holds uploaded photo bytes and hands back opaque handles.
// Serving the stored content is outside the store's contract.
type Store interface {
	// Save stores the content of r and returns a handle for it. name is
	// the client-supplied file name, used only for its extension.
	Save(ctx context.Context, name string, r io.Reader) (string, error)

	// Remove deletes the content behind a handle.
	Remove(ctx context.Context, handle string) error
}

// Config selects and parameterizes a blob store implementation.
type Config struct {
	Driver string // "disk" or "s3"
	Dir    string // disk: base directory for stored files
	Bucket string // s3: bucket name
}

// New creates the blob store selected by cfg.
func New(ctx context.Context, cfg Config, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "disk", "":
		dir := cfg.Dir
		if dir == "" {
			dir = "./uploads"
		}
		log.Info("using disk blob store", zap.String("dir", dir))
		return NewDiskStore(dir)
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("s3 blob store requires a bucket name")
		}
		log.Info("using s3 blob store", zap.String("bucket", cfg.Bucket))
		return NewS3Store(ctx, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown blob store driver: %q", cfg.Driver)
	}
}
