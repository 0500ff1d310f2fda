package identity

import (
	"time"

	"kaziid/pkg/domain"
	"kaziid/pkg/profile"
)

// Identity is the durable record representing one signed-up user. It is the
// exact payload serialized into the session snapshot slot, so every field
// carries a JSON tag.
//
// ID, Role, Domain and CreatedAt are immutable after creation. IsVerified
// starts false and flips only through the external verification workflow.
type Identity struct {
	ID         domain.IdentityID `json:"id"`
	Email      string            `json:"email"`
	Role       domain.Role       `json:"role"`
	IsVerified bool              `json:"isVerified"`
	Profile    profile.Profile   `json:"profile"`
	Domain     string            `json:"domain"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Account pairs an Identity with the credential material held by the
// directory. Seeded demo accounts carry no hash; any password matches them.
type Account struct {
	Identity     Identity
	PasswordHash []byte
}
