package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"kaziid/internal/identity"
	"kaziid/pkg/domain"
	"kaziid/pkg/email"
	"kaziid/pkg/platform/sentinel"
	"kaziid/pkg/profile"
)

// Postgres persists accounts in PostgreSQL for deployments with a real
// account database. Lookup goes through the folded email_key column so the
// address stays case-preserving at rest and case-insensitive at lookup.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Schema creates the accounts table if absent. Called once at startup;
// deployments with managed migrations can skip it.
func (d *Postgres) Schema(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL,
			email_key     TEXT NOT NULL UNIQUE,
			role          TEXT NOT NULL,
			is_verified   BOOLEAN NOT NULL,
			profile       JSONB NOT NULL,
			domain        TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			password_hash BYTEA
		)`)
	if err != nil {
		return fmt.Errorf("ensure accounts schema: %w", err)
	}
	return nil
}

func (d *Postgres) Create(ctx context.Context, account identity.Account) error {
	profileJSON, err := json.Marshal(account.Identity.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO accounts (id, email, email_key, role, is_verified, profile, domain, created_at, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		account.Identity.ID.String(),
		account.Identity.Email,
		email.Normalize(account.Identity.Email),
		account.Identity.Role.String(),
		account.Identity.IsVerified,
		profileJSON,
		account.Identity.Domain,
		account.Identity.CreatedAt,
		account.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (d *Postgres) FindByEmail(ctx context.Context, addr string) (identity.Account, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, email, role, is_verified, profile, domain, created_at, password_hash
		FROM accounts WHERE email_key = $1`,
		email.Normalize(addr),
	)

	var (
		account     identity.Account
		idText      string
		roleText    string
		profileJSON []byte
	)
	err := row.Scan(
		&idText,
		&account.Identity.Email,
		&roleText,
		&account.Identity.IsVerified,
		&profileJSON,
		&account.Identity.Domain,
		&account.Identity.CreatedAt,
		&account.PasswordHash,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.Account{}, sentinel.ErrNotFound
	}
	if err != nil {
		return identity.Account{}, fmt.Errorf("find account: %w", err)
	}

	if account.Identity.ID, err = domain.ParseIdentityID(idText); err != nil {
		return identity.Account{}, fmt.Errorf("stored account id: %w", err)
	}
	if account.Identity.Role, err = domain.ParseRole(roleText); err != nil {
		return identity.Account{}, fmt.Errorf("stored account role: %w", err)
	}
	account.Identity.Profile = profile.Profile{}
	if err := json.Unmarshal(profileJSON, &account.Identity.Profile); err != nil {
		return identity.Account{}, fmt.Errorf("stored account profile: %w", err)
	}
	return account, nil
}

// Compile-time assertion that Postgres implements Directory.
var _ Directory = (*Postgres)(nil)
