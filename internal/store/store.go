// Package store owns the log group state and persists every commit.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"auditlens/internal/codec"
	"auditlens/internal/domain"
	"auditlens/internal/ports"
)

const subscriberBuffer = 16

// ErrClosed is returned by mutations on a closed store
var ErrClosed = errors.New("store is closed")

// Store implements ports.LogGroupStore. Commits are serialized by one
// mutex; persistence runs on a background goroutine that only ever sees
// the latest committed state.
type Store struct {
	mu     sync.Mutex
	state  domain.State
	closed bool

	slot    ports.StateSlot
	pending chan domain.State
	done    chan struct{}

	subMu       sync.Mutex
	subscribers []chan domain.State
	subClosed   bool
	dropped     int64

	closeOnce sync.Once
	closeErr  error
}

// Ensure Store implements LogGroupStore
var _ ports.LogGroupStore = (*Store)(nil)

// New creates a store backed by slot. The slot is read once; a missing or
// unreadable value starts the store empty. A nil slot keeps state in
// memory only.
func New(slot ports.StateSlot) *Store {
	s := &Store{
		slot:    slot,
		pending: make(chan domain.State, 1),
		done:    make(chan struct{}),
	}
	s.state = s.load()
	go s.persist()
	return s
}

func (s *Store) load() domain.State {
	if s.slot == nil {
		return domain.State{}
	}

	data, err := s.slot.Load()
	if err != nil {
		slog.Warn("state slot unreadable, starting empty", "error", err)
		return domain.State{}
	}
	if len(data) == 0 {
		return domain.State{}
	}

	var st domain.State
	if err := codec.Unmarshal(data, &st); err != nil {
		slog.Warn("state slot undecodable, starting empty", "error", err)
		return domain.State{}
	}
	slog.Debug("state loaded", "groups", len(st.LogGroups))
	return st
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update hands fn a private copy of the state and commits it when fn
// returns nil. An error from fn leaves the state untouched and is
// returned unchanged.
func (s *Store) Update(fn func(*domain.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	working := s.state.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	s.commit(working)
	return nil
}

// Reset commits the empty state
func (s *Store) Reset() error {
	return s.Update(func(st *domain.State) error {
		*st = domain.State{}
		return nil
	})
}

// commit must be called with mu held
func (s *Store) commit(st domain.State) {
	s.state = st

	// Latest value wins: a snapshot not yet picked up by the persister
	// is replaced.
	select {
	case s.pending <- st:
	default:
		select {
		case <-s.pending:
		default:
		}
		s.pending <- st
	}

	s.broadcast(st)
}

// Subscribe returns a channel receiving every committed state. A slow
// subscriber loses its oldest unread states rather than blocking commits.
// The channel is closed by Close.
func (s *Store) Subscribe() <-chan domain.State {
	ch := make(chan domain.State, subscriberBuffer)
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subClosed {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Dropped returns how many states were discarded for slow subscribers
func (s *Store) Dropped() int64 {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return s.dropped
}

func (s *Store) broadcast(st domain.State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subscribers {
		snap := st.Clone()
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
			s.dropped++
		default:
		}
		select {
		case ch <- snap:
		default:
			s.dropped++
		}
	}
}

func (s *Store) persist() {
	defer close(s.done)

	for st := range s.pending {
		if s.slot == nil {
			continue
		}
		if err := s.save(st); err != nil {
			slog.Error("failed to persist state", "error", err)
		}
	}
}

func (s *Store) save(st domain.State) error {
	data, err := codec.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.slot.Save(data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Close waits for the last committed state to be written, closes the
// subscriber channels and the slot.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.pending)
		s.mu.Unlock()

		<-s.done

		s.subMu.Lock()
		for _, ch := range s.subscribers {
			close(ch)
		}
		s.subscribers = nil
		s.subClosed = true
		s.subMu.Unlock()

		if s.slot != nil {
			s.closeErr = s.slot.Close()
		}
	})
	return s.closeErr
}
