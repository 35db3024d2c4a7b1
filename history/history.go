// Package history records validation outcomes in an append-only log.
//
// The log is a simple capture of what the simulator saw: one entry per
// validation call, newest first. It carries no authentication or
// retention semantics; the store object is created once per process and
// passed by reference into the transport layer.
package history

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/NetRider88/POSV2/id"
	"github.com/NetRider88/POSV2/internal/entity"
	"github.com/NetRider88/POSV2/payload"
	"github.com/NetRider88/POSV2/result"
)

// ErrClosed is returned when a store operation is attempted after the
// store is closed.
var ErrClosed = errors.New("history: store is closed")

// Entry is one recorded validation outcome.
type Entry struct {
	entity.Entity

	// ID is the unique TypeID for this entry.
	ID id.ID `json:"id"`

	// SessionID ties the entry to a simulator session, when known.
	SessionID id.ID `json:"session_id,omitempty"`

	// RequestType is the classified payload type.
	RequestType payload.RequestType `json:"request_type"`

	// IsValid is the final validation outcome.
	IsValid bool `json:"is_valid"`

	// ErrorCodes are the stable codes reported for the payload.
	ErrorCodes []string `json:"error_codes,omitempty"`

	// Payload is the raw request body as received.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// New builds a history entry from a validation result and the raw
// payload it was derived from.
func New(res *result.ValidationResult, raw json.RawMessage) *Entry {
	return &Entry{
		Entity:      entity.New(),
		ID:          id.NewTestEntryID(),
		RequestType: res.RequestType,
		IsValid:     res.IsValid,
		ErrorCodes:  res.ErrorCodes,
		Payload:     raw,
	}
}

// ListOpts configures filtering and pagination for history listing.
type ListOpts struct {
	Offset      int
	Limit       int
	RequestType payload.RequestType // empty matches all
	OnlyInvalid bool
}

// Store is an append-only log of validation outcomes. Implementations
// must be safe for concurrent use. Listing returns entries newest
// first.
type Store interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context, opts ListOpts) ([]*Entry, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
	Close() error
}
