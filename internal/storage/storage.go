package storage

import (
	"context"
	"io"
)

// Uploader archives uploaded report images. The archive is best-effort: a
// failed upload never affects the analysis result.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
