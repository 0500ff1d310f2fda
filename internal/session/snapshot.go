// Package session owns the signed-in identity for one installation: the
// in-memory session state, its durable snapshot slot, and the mutation
// operations over both.
package session

import (
	"context"

	"kaziid/internal/identity"
)

// SnapshotStore is the durable snapshot slot: a single named location
// holding one serialized identity, or nothing. It is written by every
// mutating operation, read once at process start, and deleted on sign-out.
//
// Load returns sentinel.ErrNotFound (possibly wrapped) when the slot is
// empty. Delete on an empty slot is a no-op.
type SnapshotStore interface {
	Save(ctx context.Context, ident identity.Identity) error
	Load(ctx context.Context) (identity.Identity, error)
	Delete(ctx context.Context) error
}
