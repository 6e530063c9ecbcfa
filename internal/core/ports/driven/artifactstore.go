package driven

import (
	"context"
	"io"
	"time"
)

// StorageDriver names an ArtifactStore implementation.
type StorageDriver string

const (
	DriverFS     StorageDriver = "fs"
	DriverMemory StorageDriver = "memory"
	DriverS3     StorageDriver = "s3"
)

// ArtifactInfo describes a stored artifact.
type ArtifactInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
	Metadata     map[string]string
}

// PutOptions carries optional attributes for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// ArtifactStore stores model files as opaque bytes under slash separated keys.
// Put overwrites an existing key.
type ArtifactStore interface {
	// Put stores the contents of r under key.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (ArtifactInfo, error)

	// Get opens the artifact at key. The caller closes the reader.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (ArtifactInfo, io.ReadCloser, error)

	// Head returns metadata for key without its contents.
	// Returns domain.ErrNotFound if the key does not exist.
	Head(ctx context.Context, key string) (ArtifactInfo, error)

	// Delete removes key. It reports whether anything was removed.
	Delete(ctx context.Context, key string) (bool, error)

	// List returns artifacts whose key starts with prefix, sorted by key.
	List(ctx context.Context, prefix string) ([]ArtifactInfo, error)

	// Driver identifies the backing implementation.
	Driver() StorageDriver
}

type metadataKey struct{}

// WithArtifactMetadata returns a context carrying metadata for the
// artifacts written under it.
func WithArtifactMetadata(ctx context.Context, md map[string]string) context.Context {
	return context.WithValue(ctx, metadataKey{}, md)
}

// ArtifactMetadata returns the metadata attached to ctx, or nil.
func ArtifactMetadata(ctx context.Context) map[string]string {
	md, _ := ctx.Value(metadataKey{}).(map[string]string)
	return md
}
