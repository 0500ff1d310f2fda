package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kaziid/internal/identity"
	"kaziid/pkg/domain"
	"kaziid/pkg/platform/sentinel"
	"kaziid/pkg/profile"
)

// SnapshotSlotSuite runs the slot contract against both local backends:
// exactly one identity resident, absent reads as ErrNotFound, delete is
// idempotent, and the payload survives the JSON round trip.
type SnapshotSlotSuite struct {
	suite.Suite
	newStore func(t *testing.T) SnapshotStore
}

func TestInMemorySnapshotSuite(t *testing.T) {
	suite.Run(t, &SnapshotSlotSuite{
		newStore: func(*testing.T) SnapshotStore { return NewInMemorySnapshot() },
	})
}

func TestFileSnapshotSuite(t *testing.T) {
	suite.Run(t, &SnapshotSlotSuite{
		newStore: func(t *testing.T) SnapshotStore { return NewFileSnapshot(t.TempDir()) },
	})
}

func snapshotIdentity() identity.Identity {
	return identity.Identity{
		ID:         domain.NewIdentityID(),
		Email:      "a@b.com",
		Role:       domain.RoleYouth,
		IsVerified: false,
		Profile:    profile.Profile{"fullName": "John Doe", "phone": "1"},
		Domain:     "johndoe0123.ke",
		CreatedAt:  time.UnixMilli(1756710000123).UTC(),
	}
}

func (s *SnapshotSlotSuite) TestSlotContract() {
	ctx := context.Background()

	s.Run("empty slot loads as ErrNotFound", func() {
		store := s.newStore(s.T())
		_, err := store.Load(ctx)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("saved identity round-trips", func() {
		store := s.newStore(s.T())
		ident := snapshotIdentity()
		s.Require().NoError(store.Save(ctx, ident))

		loaded, err := store.Load(ctx)
		s.Require().NoError(err)
		s.Equal(ident.ID, loaded.ID)
		s.Equal(ident.Email, loaded.Email)
		s.Equal(ident.Role, loaded.Role)
		s.Equal(ident.IsVerified, loaded.IsVerified)
		s.Equal(ident.Profile, loaded.Profile)
		s.Equal(ident.Domain, loaded.Domain)
		s.True(ident.CreatedAt.Equal(loaded.CreatedAt))
	})

	s.Run("second save overwrites the slot", func() {
		store := s.newStore(s.T())
		first := snapshotIdentity()
		s.Require().NoError(store.Save(ctx, first))

		second := snapshotIdentity()
		second.Email = "b@c.com"
		s.Require().NoError(store.Save(ctx, second))

		loaded, err := store.Load(ctx)
		s.Require().NoError(err)
		s.Equal("b@c.com", loaded.Email)
		s.Equal(second.ID, loaded.ID)
	})

	s.Run("delete empties the slot and is idempotent", func() {
		store := s.newStore(s.T())
		s.Require().NoError(store.Save(ctx, snapshotIdentity()))

		s.Require().NoError(store.Delete(ctx))
		_, err := store.Load(ctx)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		s.Require().NoError(store.Delete(ctx))
	})
}

func TestFileSnapshotCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileSnapshot(dir)
	ctx := context.Background()

	require := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	require(store.Save(ctx, snapshotIdentity()))

	// Corrupt the file behind the store's back.
	require(writeCorrupt(dir))

	if _, err := store.Load(ctx); err == nil {
		t.Fatal("expected decode error for corrupt snapshot")
	}
}

func writeCorrupt(dir string) error {
	return os.WriteFile(filepath.Join(dir, snapshotFile), []byte("{not json"), 0o600)
}
