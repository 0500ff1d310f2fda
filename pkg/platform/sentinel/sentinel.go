package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and backends return these
// (optionally wrapped) so services can translate them into caller-facing
// errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record or snapshot does not exist in the store
// - ErrInvalidCredentials: no seeded or registered account matches the login
// - ErrConflict: an account with the same login already exists
// - ErrUnavailable: backing service temporarily unreachable
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrUnavailable        = errors.New("unavailable")
)
