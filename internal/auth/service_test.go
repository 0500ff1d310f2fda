package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"kaziid/internal/identity/directory"
	"kaziid/pkg/domain"
	"kaziid/pkg/platform/sentinel"
	"kaziid/pkg/profile"
)

type DirectoryBackendSuite struct {
	suite.Suite
	dir     *directory.InMemory
	backend *DirectoryBackend
}

func TestDirectoryBackendSuite(t *testing.T) {
	suite.Run(t, new(DirectoryBackendSuite))
}

func (s *DirectoryBackendSuite) SetupTest() {
	s.dir = directory.NewInMemory()
	s.backend = NewDirectoryBackend(s.dir, WithClock(func() time.Time {
		return time.UnixMilli(1756710000123)
	}))
}

func (s *DirectoryBackendSuite) TestRegister() {
	s.Run("builds an unverified identity with derived domain", func() {
		ident, err := s.backend.Register(context.Background(), RegisterRequest{
			Email:    "a@b.com",
			Password: "secret",
			Role:     domain.RoleYouth,
			Profile:  profile.Profile{"fullName": "John Doe"},
		})
		s.Require().NoError(err)

		s.False(ident.IsVerified)
		s.Equal(domain.RoleYouth, ident.Role)
		s.Equal("johndoe0123.ke", ident.Domain)
		s.False(ident.ID.IsNil())
		s.Equal(time.UnixMilli(1756710000123), ident.CreatedAt)
	})

	s.Run("stores a bcrypt hash, never the password", func() {
		_, err := s.backend.Register(context.Background(), RegisterRequest{
			Email:    "hash@b.com",
			Password: "secret",
			Role:     domain.RoleYouth,
		})
		s.Require().NoError(err)

		account, err := s.dir.FindByEmail(context.Background(), "hash@b.com")
		s.Require().NoError(err)
		s.NotContains(string(account.PasswordHash), "secret")
		s.NoError(bcrypt.CompareHashAndPassword(account.PasswordHash, []byte("secret")))
	})

	s.Run("employer domain uses orgName with role prefix", func() {
		ident, err := s.backend.Register(context.Background(), RegisterRequest{
			Email:   "jobs@acme.com",
			Role:    domain.RoleEmployer,
			Profile: profile.Profile{"orgName": "Acme Ltd"},
		})
		s.Require().NoError(err)
		s.True(strings.HasPrefix(ident.Domain, "empacmeltd"))
	})

	s.Run("falls back to email-derived name when profile has none", func() {
		ident, err := s.backend.Register(context.Background(), RegisterRequest{
			Email: "jane.doe@b.com",
			Role:  domain.RoleYouth,
		})
		s.Require().NoError(err)
		s.True(strings.HasPrefix(ident.Domain, "janedoe"))
	})

	s.Run("duplicate email propagates as an error", func() {
		_, err := s.backend.Register(context.Background(), RegisterRequest{
			Email: "dup@b.com", Role: domain.RoleYouth,
		})
		s.Require().NoError(err)

		_, err = s.backend.Register(context.Background(), RegisterRequest{
			Email: "DUP@b.com", Role: domain.RoleYouth,
		})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("missing role is rejected", func() {
		_, err := s.backend.Register(context.Background(), RegisterRequest{Email: "r@b.com"})
		s.Require().Error(err)
	})
}

func (s *DirectoryBackendSuite) TestAuthenticate() {
	s.Run("unknown email is invalid credentials", func() {
		_, err := s.backend.Authenticate(context.Background(), "nobody@nowhere.com", "x")
		s.Require().ErrorIs(err, sentinel.ErrInvalidCredentials)
	})

	s.Run("seeded accounts accept any password", func() {
		identities := directory.SeedDemoAccounts(s.dir)
		seeded := identities[0]

		found, err := s.backend.Authenticate(context.Background(), seeded.Email, "anything-at-all")
		s.Require().NoError(err)
		s.Equal(seeded.ID, found.ID)
	})

	s.Run("registered accounts verify the password", func() {
		_, err := s.backend.Register(context.Background(), RegisterRequest{
			Email:    "check@b.com",
			Password: "right",
			Role:     domain.RoleYouth,
		})
		s.Require().NoError(err)

		_, err = s.backend.Authenticate(context.Background(), "check@b.com", "wrong")
		s.Require().ErrorIs(err, sentinel.ErrInvalidCredentials)

		ident, err := s.backend.Authenticate(context.Background(), "CHECK@b.com", "right")
		s.Require().NoError(err)
		s.Equal("check@b.com", ident.Email)
	})

	s.Run("latency pause respects context cancellation", func() {
		backend := NewDirectoryBackend(s.dir, WithLatency(time.Minute))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := backend.Authenticate(ctx, "a@b.com", "x")
		s.Require().ErrorIs(err, context.Canceled)
	})
}

func TestDeviceDisplayName(t *testing.T) {
	t.Run("empty user agent returns unknown device", func(t *testing.T) {
		if got := DeviceDisplayName(""); got != "Unknown Device" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("chrome on desktop includes browser and OS", func(t *testing.T) {
		got := DeviceDisplayName("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		if !strings.Contains(got, "Chrome") || !strings.Contains(got, "on") {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("firefox on linux includes browser and OS", func(t *testing.T) {
		got := DeviceDisplayName("Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")
		if !strings.Contains(got, "Firefox") || !strings.Contains(got, "on") {
			t.Fatalf("got %q", got)
		}
	})
}
