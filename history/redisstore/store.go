// Package redisstore provides a Redis-backed history Store, for
// deployments where the simulator runs as multiple replicas.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/NetRider88/POSV2/history"
)

// compile-time interface check.
var _ history.Store = (*Store)(nil)

const defaultKey = "posv2:history"

// Store implements history.Store on a Redis list. Entries are stored as
// JSON, newest at the head.
type Store struct {
	rdb goredis.UniversalClient
	key string

	// maxEntries trims the list after each append; 0 keeps everything.
	maxEntries int64
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the Redis key holding the log.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithMaxEntries caps the log length; older entries are trimmed.
func WithMaxEntries(n int64) Option {
	return func(s *Store) { s.maxEntries = n }
}

// New creates a Redis-backed history store.
func New(rdb goredis.UniversalClient, opts ...Option) *Store {
	s := &Store{rdb: rdb, key: defaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append pushes an entry to the head of the log.
func (s *Store) Append(ctx context.Context, e *history.Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("history: marshal entry: %w", err)
	}

	if err := s.rdb.LPush(ctx, s.key, raw).Err(); err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	if s.maxEntries > 0 {
		if err := s.rdb.LTrim(ctx, s.key, 0, s.maxEntries-1).Err(); err != nil {
			return fmt.Errorf("history: trim: %w", err)
		}
	}
	return nil
}

// List returns entries newest first, honoring filters and pagination.
// Filters are applied after fetch, so offsets count matched entries.
func (s *Store) List(ctx context.Context, opts history.ListOpts) ([]*history.Entry, error) {
	raws, err := s.rdb.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}

	matched := make([]*history.Entry, 0, len(raws))
	for _, raw := range raws {
		var e history.Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("history: decode entry: %w", err)
		}
		if opts.RequestType != "" && e.RequestType != opts.RequestType {
			continue
		}
		if opts.OnlyInvalid && e.IsValid {
			continue
		}
		matched = append(matched, &e)
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

// Count returns the log length.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.rdb.LLen(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return int(n), nil
}

// Clear deletes the log.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
