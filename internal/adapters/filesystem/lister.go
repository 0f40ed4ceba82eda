package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"auditlens/internal/domain"
	"auditlens/internal/ports"
)

// Lister implements ports.DirectoryLister using os.ReadDir
type Lister struct{}

// Ensure Lister implements DirectoryLister
var _ ports.DirectoryLister = (*Lister)(nil)

// NewLister creates a new directory lister
func NewLister() *Lister {
	return &Lister{}
}

// ListDir returns the files of path sorted by name. Sub-directories are
// skipped; symlinks are listed as they are.
func (l *Lister) ListDir(ctx context.Context, path string) ([]domain.DirectoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := expandHome(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.DirectoryError{Path: path, Err: err}
	}

	out := make([]domain.DirectoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		out = append(out, domain.DirectoryEntry{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	return out, nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
