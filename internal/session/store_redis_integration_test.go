//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kaziid/internal/identity"
	"kaziid/internal/session"
	"kaziid/pkg/domain"
	"kaziid/pkg/platform/sentinel"
	"kaziid/pkg/profile"
	"kaziid/pkg/testutil/containers"
)

type RedisSnapshotSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisSnapshot
}

func TestRedisSnapshotSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSnapshotSuite))
}

func (s *RedisSnapshotSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedisSnapshot(s.redis.Client)
}

func (s *RedisSnapshotSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func redisIdentity() identity.Identity {
	return identity.Identity{
		ID:         domain.NewIdentityID(),
		Email:      "amina@example.com",
		Role:       domain.RoleYouth,
		IsVerified: true,
		Profile:    profile.Profile{"fullName": "Amina Otieno", "phone": "+254700112233"},
		Domain:     "aminaotieno0123.ke",
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *RedisSnapshotSuite) TestRoundTrip() {
	ctx := context.Background()
	ident := redisIdentity()

	s.Require().NoError(s.store.Save(ctx, ident))

	loaded, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Equal(ident.ID, loaded.ID)
	s.Equal(ident.Email, loaded.Email)
	s.Equal(ident.Profile, loaded.Profile)
	s.True(ident.CreatedAt.Equal(loaded.CreatedAt))
}

func (s *RedisSnapshotSuite) TestEmptySlot() {
	_, err := s.store.Load(context.Background())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisSnapshotSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, redisIdentity()))

	s.Require().NoError(s.store.Delete(ctx))
	_, err := s.store.Load(ctx)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Delete(ctx))
}

func (s *RedisSnapshotSuite) TestKeyPrefixIsolation() {
	ctx := context.Background()
	other := session.NewRedisSnapshot(s.redis.Client, session.WithKeyPrefix("installB"))

	s.Require().NoError(s.store.Save(ctx, redisIdentity()))

	_, err := other.Load(ctx)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
