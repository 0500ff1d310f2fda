package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kaziid/internal/identity"
	"kaziid/internal/identity/directory"
	"kaziid/pkg/domain"
	"kaziid/pkg/email"
	"kaziid/pkg/platform/sentinel"
)

// profileNameKeys maps each role to the profile field the domain handle is
// derived from.
var profileNameKeys = map[domain.Role]string{
	domain.RoleYouth:       "fullName",
	domain.RoleEmployer:    "orgName",
	domain.RoleGovernment:  "ministry",
	domain.RoleInstitution: "institutionName",
}

// DirectoryBackend authenticates against an account directory. Registered
// accounts get a bcrypt hash that Authenticate verifies; seeded demo
// accounts carry no hash and accept any password.
type DirectoryBackend struct {
	dir     directory.Directory
	latency time.Duration
	now     func() time.Time
}

// Option configures a DirectoryBackend.
type Option func(*DirectoryBackend)

// WithLatency adds a fixed pause to Register and Authenticate, standing in
// for the round trip to a real identity service.
func WithLatency(d time.Duration) Option {
	return func(b *DirectoryBackend) {
		b.latency = d
	}
}

// WithClock overrides the creation-time source. Tests use it to pin the
// derived domain stamp.
func WithClock(now func() time.Time) Option {
	return func(b *DirectoryBackend) {
		b.now = now
	}
}

func NewDirectoryBackend(dir directory.Directory, opts ...Option) *DirectoryBackend {
	b := &DirectoryBackend{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Register builds a fresh identity and stores it with the hashed password.
// The identity starts unverified; verification flips the flag through a
// separate workflow.
func (b *DirectoryBackend) Register(ctx context.Context, req RegisterRequest) (identity.Identity, error) {
	if err := b.pause(ctx); err != nil {
		return identity.Identity{}, err
	}

	if req.Role.IsNil() {
		return identity.Identity{}, fmt.Errorf("role is required")
	}

	now := b.now()
	ident := identity.Identity{
		ID:         domain.NewIdentityID(),
		Email:      req.Email,
		Role:       req.Role,
		IsVerified: false,
		Profile:    req.Profile.Clone(),
		Domain:     identity.GenerateDomain(b.domainName(req), req.Role, now),
		CreatedAt:  now,
	}

	account := identity.Account{Identity: ident}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return identity.Identity{}, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hash
	}

	if err := b.dir.Create(ctx, account); err != nil {
		return identity.Identity{}, fmt.Errorf("register identity: %w", err)
	}
	return ident, nil
}

// Authenticate resolves the account by case-insensitive email. Unknown
// emails and hash mismatches both come back as ErrInvalidCredentials so
// callers cannot probe for registered addresses.
func (b *DirectoryBackend) Authenticate(ctx context.Context, addr, password string) (identity.Identity, error) {
	if err := b.pause(ctx); err != nil {
		return identity.Identity{}, err
	}

	account, err := b.dir.FindByEmail(ctx, addr)
	if errors.Is(err, sentinel.ErrNotFound) {
		return identity.Identity{}, sentinel.ErrInvalidCredentials
	}
	if err != nil {
		return identity.Identity{}, fmt.Errorf("authenticate: %w", err)
	}

	if len(account.PasswordHash) > 0 {
		if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
			return identity.Identity{}, sentinel.ErrInvalidCredentials
		}
	}
	return account.Identity, nil
}

// domainName picks the role's name field from the profile, falling back to
// a name derived from the email local part.
func (b *DirectoryBackend) domainName(req RegisterRequest) string {
	if name := req.Profile.String(profileNameKeys[req.Role]); name != "" {
		return name
	}
	return email.DisplayName(req.Email)
}

func (b *DirectoryBackend) pause(ctx context.Context) error {
	if b.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(b.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ Backend = (*DirectoryBackend)(nil)
