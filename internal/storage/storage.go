package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage holds the object storage abstraction behind uploads.
// Keys are slash-separated paths relative to the storage root, e.g.
// "documents/invoices/documents-1718000000000.pdf".

// ErrObjectNotFound is returned by Stat and Delete when no object exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is the object store every resource family writes through.
type Storage interface {
	// Put writes the object under key, creating intermediate prefixes as needed.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Stat returns the object's info or ErrObjectNotFound.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// List returns the objects directly under prefix, sorted by key. Nested prefixes are skipped.
	// A prefix that does not exist yields an error matching fs.ErrNotExist.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Delete removes the object or returns ErrObjectNotFound.
	Delete(ctx context.Context, key string) error
	// Ping checks that the backend is reachable and usable.
	Ping(ctx context.Context) error
}

// Presigner is implemented by backends that can hand out time-limited download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
