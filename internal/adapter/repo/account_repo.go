package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const uniqueViolation = "23505"

// AccountRepositoryPG implements AccountRepository using PostgreSQL.
type AccountRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repo.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepositoryPG {
	return &AccountRepositoryPG{pool: pool}
}

// Create inserts a new account. A duplicate username or email surfaces
// as domain.ErrConflict.
func (r *AccountRepositoryPG) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO accounts (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, created_at;
`, account.Username, account.Email, account.PasswordHash)

	created := *account
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("account %q: %w", account.Username, domain.ErrConflict)
		}
		return nil, err
	}
	return &created, nil
}

// GetByID returns the account with the given id.
func (r *AccountRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
SELECT id, username, email, password_hash, created_at
FROM accounts
WHERE id = $1;
`, id))
}

// GetByUsername returns the account with the given handle.
func (r *AccountRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
SELECT id, username, email, password_hash, created_at
FROM accounts
WHERE username = $1;
`, username))
}

func (r *AccountRepositoryPG) scanOne(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
