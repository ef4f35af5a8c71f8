package storage

import (
	"context"
	"io"
)

// Storage defines the minimal interface for file storage backends.
// Intentionally simple: store a file, delete a file, get its URL.
type Storage interface {
	// Put stores a file at the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by its key. Returns nil if file doesn't exist.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for a file given its key.
	URL(key string) string
}

// Config holds backend settings shared by S3/MinIO and local storage
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	PublicURL   string
	LocalDir    string
}
