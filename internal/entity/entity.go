// Package entity defines the base entity type for POSV2 domain objects.
package entity

import "time"

// Entity is the base type embedded by stored domain objects, such as
// history entries.
type Entity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an Entity with both timestamps set to the current UTC time.
func New() Entity {
	now := time.Now().UTC()
	return Entity{CreatedAt: now, UpdatedAt: now}
}
