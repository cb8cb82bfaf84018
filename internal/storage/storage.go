package storage

import (
	"context"
	"io"
)

// BlobStorage accepts an uploaded object and returns a durable retrievable
// URL. The verification flow is its only caller.
type BlobStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
