// Package auth is the authentication collaborator behind the session
// service. The session service hands it credentials plus a role-shaped
// profile fragment and gets back a canonical identity or an error; it never
// inspects passwords itself.
package auth

import (
	"context"

	"kaziid/internal/identity"
	"kaziid/pkg/domain"
	"kaziid/pkg/profile"
)

// RegisterRequest carries everything needed to create a fresh identity.
// The password is opaque to everything outside this package.
type RegisterRequest struct {
	Email    string
	Password string
	Role     domain.Role
	Profile  profile.Profile
}

// Backend is the injectable authentication port. The directory-backed
// implementation below serves demos and tests; a network identity service
// satisfies the same contract in production.
type Backend interface {
	Register(ctx context.Context, req RegisterRequest) (identity.Identity, error)
	Authenticate(ctx context.Context, email, password string) (identity.Identity, error)
}
