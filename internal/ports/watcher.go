package ports

import "context"

// DirectoryWatcher reports files created or written under a set of
// directories. Bursts of events for one path are coalesced.
type DirectoryWatcher interface {
	// Watch blocks until ctx is done, sending changed file paths to out
	Watch(ctx context.Context, dirs []string, out chan<- string) error
}
