// Package storage persists uploaded image blobs and returns public URLs.
package storage

import (
	"context"
	"io"
)

// PutInput describes an uploaded blob.
type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

// PutResult is where a blob ended up.
type PutResult struct {
	Key string
	URL string
}

// Storage is implemented by every blob driver.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
