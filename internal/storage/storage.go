package storage

import (
	"context"
	"io"
)

// Uploader writes an audio blob to the storage backend and returns its
// public URL. Upload failure is non-fatal to callers: they keep a null
// audio reference and move on.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}
