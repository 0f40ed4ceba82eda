package ports

import "auditlens/internal/domain"

// LogGroupStore owns the application state. Every Update is applied
// atomically: fn works on a private copy and the result replaces the
// current state only when fn returns nil.
type LogGroupStore interface {
	Snapshot() domain.State
	Update(fn func(*domain.State) error) error
	Reset() error
}

// StateSlot persists one encoded state value between runs
type StateSlot interface {
	// Load returns the stored value, or nil when the slot is empty
	Load() ([]byte, error)
	Save(data []byte) error
	Close() error
}
