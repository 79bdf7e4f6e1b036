package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains blob storage abstractions for document bytes.
// Implementations stream content and never buffer whole objects in memory.
// Keys are slash-separated paths; each client's documents live under a
// "client_<id>/" prefix so a whole tenant can be dropped in one call.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a blob repository keyed by path.
// Delete and DeletePrefix treat already-absent targets as success so that
// retried or cascading deletes stay idempotent.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every object whose key starts with prefix.
	// Used by client cascade deletes to clear a tenant namespace.
	DeletePrefix(ctx context.Context, prefix string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	// Backends without presigning support return an error.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
