// Package memory provides an in-memory history Store for unit testing
// and single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/NetRider88/POSV2/history"
)

// compile-time interface check.
var _ history.Store = (*Store)(nil)

// Store is an in-memory append log of validation outcomes.
type Store struct {
	mu      sync.RWMutex
	entries []*history.Entry // append order; List reverses
	closed  bool
}

// New creates a new in-memory history store.
func New() *Store {
	return &Store{}
}

// Append adds an entry to the log.
func (s *Store) Append(_ context.Context, e *history.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return history.ErrClosed
	}
	s.entries = append(s.entries, e)
	return nil
}

// List returns entries newest first, honoring filters and pagination.
func (s *Store) List(_ context.Context, opts history.ListOpts) ([]*history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, history.ErrClosed
	}

	matched := make([]*history.Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if opts.RequestType != "" && e.RequestType != opts.RequestType {
			continue
		}
		if opts.OnlyInvalid && e.IsValid {
			continue
		}
		matched = append(matched, e)
	}

	if opts.Offset >= len(matched) {
		return []*history.Entry{}, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// Count returns the number of entries in the log.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, history.ErrClosed
	}
	return len(s.entries), nil
}

// Clear removes every entry.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return history.ErrClosed
	}
	s.entries = nil
	return nil
}

// Close marks the store as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
