package ports

import (
	"context"

	"auditlens/internal/domain"
)

// DirectoryLister enumerates the entries of a log directory
type DirectoryLister interface {
	// ListDir returns the non-directory entries of path in listing order.
	// An unreadable directory yields a *domain.DirectoryError.
	ListDir(ctx context.Context, path string) ([]domain.DirectoryEntry, error)
}

// FormatDecoder turns files on disk into text
type FormatDecoder interface {
	// ReadText reads a plain file as UTF-8 text
	ReadText(ctx context.Context, path string) (string, error)

	// Decompress reads a gzip file and returns its decompressed text
	Decompress(ctx context.Context, path string) (string, error)
}

// FilePicker lets the user choose manifest files interactively.
// An empty result without error means the user cancelled.
type FilePicker interface {
	PickFiles(ctx context.Context) ([]string, error)
}
