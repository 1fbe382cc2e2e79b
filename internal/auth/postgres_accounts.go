package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresAccounts struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresAccounts(db *pgxpool.Pool, timeout time.Duration) *PostgresAccounts {
	return &PostgresAccounts{db: db, timeout: timeout}
}

func (r *PostgresAccounts) GetByUsername(ctx context.Context, username string) (Account, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at
		FROM staff_accounts
		WHERE username = $1
	`
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var a Account
	err := r.db.QueryRow(timeoutCtx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, errAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *PostgresAccounts) Create(ctx context.Context, a Account) error {
	const upsertSQL = `
		INSERT INTO staff_accounts (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role
	`
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.Exec(timeoutCtx, upsertSQL, a.ID, a.Username, a.PasswordHash, a.Role)
	return err
}
