package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kaziid/internal/identity"
	"kaziid/pkg/domain"
	"kaziid/pkg/platform/sentinel"
	"kaziid/pkg/profile"
)

type InMemorySuite struct {
	suite.Suite
	dir *InMemory
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.dir = NewInMemory()
}

func makeAccount(addr string) identity.Account {
	return identity.Account{
		Identity: identity.Identity{
			ID:        domain.NewIdentityID(),
			Email:     addr,
			Role:      domain.RoleYouth,
			Profile:   profile.Profile{"fullName": "Jane Doe"},
			Domain:    "janedoe0123.ke",
			CreatedAt: time.Now(),
		},
	}
}

func (s *InMemorySuite) TestLookup() {
	s.Run("finds account case-insensitively, address preserved", func() {
		account := makeAccount("Jane.Doe@Example.com")
		s.Require().NoError(s.dir.Create(context.Background(), account))

		found, err := s.dir.FindByEmail(context.Background(), "jane.doe@example.COM")
		s.Require().NoError(err)
		s.Equal("Jane.Doe@Example.com", found.Identity.Email)
		s.Equal(account.Identity.ID, found.Identity.ID)
	})

	s.Run("unknown email returns ErrNotFound", func() {
		_, err := s.dir.FindByEmail(context.Background(), "nobody@nowhere.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemorySuite) TestCreate() {
	s.Run("duplicate email differing only in case conflicts", func() {
		s.Require().NoError(s.dir.Create(context.Background(), makeAccount("a@b.com")))

		err := s.dir.Create(context.Background(), makeAccount("A@B.com"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemorySuite) TestSeed() {
	identities := SeedDemoAccounts(s.dir)
	s.Require().Len(identities, len(domain.SupportedRoles()))

	seen := make(map[domain.Role]bool)
	for _, ident := range identities {
		seen[ident.Role] = true

		found, err := s.dir.FindByEmail(context.Background(), ident.Email)
		s.Require().NoError(err)
		s.Nil(found.PasswordHash, "seeded accounts carry no hash")
		s.NotEmpty(found.Identity.Domain)
	}
	for _, role := range domain.SupportedRoles() {
		s.True(seen[role], "seed covers role %s", role)
	}
}
