package directory

import (
	"context"
	"sync"

	"kaziid/internal/identity"
	"kaziid/pkg/email"
	"kaziid/pkg/platform/sentinel"
)

// InMemory keeps the account set in a map keyed by folded email. It
// intentionally favors clarity over performance.
type InMemory struct {
	mu       sync.RWMutex
	accounts map[string]identity.Account
}

func NewInMemory() *InMemory {
	return &InMemory{accounts: make(map[string]identity.Account)}
}

func (d *InMemory) Create(_ context.Context, account identity.Account) error {
	key := email.Normalize(account.Identity.Email)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.accounts[key]; exists {
		return sentinel.ErrConflict
	}
	d.accounts[key] = account
	return nil
}

func (d *InMemory) FindByEmail(_ context.Context, addr string) (identity.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if account, ok := d.accounts[email.Normalize(addr)]; ok {
		return account, nil
	}
	return identity.Account{}, sentinel.ErrNotFound
}

// Compile-time assertion that InMemory implements Directory.
var _ Directory = (*InMemory)(nil)
