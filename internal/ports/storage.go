package ports

import (
	"context"
	"io"
)

// FileStore durably writes submission bytes at a computed path. The service
// persists only the path string; retrieval is another collaborator's job.
type FileStore interface {
	Put(ctx context.Context, path string, contents io.Reader) error
}
