// Package directory holds the closed set of known accounts that sign-in
// resolves against. In production this fronts the account database; in
// tests and demos an in-memory seeded set stands in for it.
package directory

import (
	"context"

	"kaziid/internal/identity"
)

// Directory is interface-driven to keep the auth backend testable and to
// allow swapping in-memory, Postgres, or external persistence without
// rewiring business code.
//
// Email lookup is case-insensitive; storage keeps the address as entered.
type Directory interface {
	Create(ctx context.Context, account identity.Account) error
	FindByEmail(ctx context.Context, email string) (identity.Account, error)
}
