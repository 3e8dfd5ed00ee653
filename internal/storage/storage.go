package storage

import (
	"context"
)

// AssetStorage defines the interface for object storage operations used by
// the exercise media workflow.
type AssetStorage interface {
	// Upload stores bytes under a path namespaced by folderKey, using a
	// collision-resistant object name (timestamp + original filename), and
	// returns a durable URL for the object.
	Upload(ctx context.Context, folderKey, filename, contentType string, data []byte) (string, error)

	// DeleteFolder enumerates and deletes every object under the folder.
	// Partial failure (some objects deleted, others not) is not rolled back.
	DeleteFolder(ctx context.Context, folderKey string) error

	// DeleteByURL recovers a storage path from an upload URL and deletes the
	// object. If the URL cannot be parsed back to a path, the operation is
	// abandoned with a log line rather than an error: cleanup here is
	// best-effort.
	DeleteByURL(ctx context.Context, url string) error
}
