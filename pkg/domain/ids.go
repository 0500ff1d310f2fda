package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// IdentityID identifies one durable identity record. UUID-backed so storage
// keys stay opaque and collision-free.
type IdentityID uuid.UUID

// NewIdentityID allocates a fresh random identity ID.
func NewIdentityID() IdentityID {
	return IdentityID(uuid.New())
}

// ParseIdentityID validates and returns an IdentityID.
func ParseIdentityID(s string) (IdentityID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return IdentityID{}, fmt.Errorf("invalid identity id: %w", err)
	}
	return IdentityID(u), nil
}

// String returns the canonical UUID string.
func (id IdentityID) String() string {
	return uuid.UUID(id).String()
}

// IsNil returns true for the zero identity ID.
func (id IdentityID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so the ID serializes as its
// canonical string inside JSON snapshots.
func (id IdentityID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *IdentityID) UnmarshalText(b []byte) error {
	parsed, err := ParseIdentityID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
