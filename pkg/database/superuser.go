package database

import (
	"context"
	"errors"
	"strings"

	"alumni-network-backend/pkg/auth"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSuperuser creates the bootstrap admin account when it does not exist.
// It reports whether a row was inserted.
func EnsureSuperuser(ctx context.Context, pool *pgxpool.Pool, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}
	if len(password) < 8 {
		return false, errors.New("first superuser password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	tag, err := pool.Exec(ctx, `
		INSERT INTO users (email, hashed_password, full_name, is_superuser, is_active)
		VALUES ($1, $2, 'Administrator', TRUE, TRUE)
		ON CONFLICT (email) DO NOTHING`, email, hash)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO emails (email, user_id, preferred)
		SELECT email, id, TRUE FROM users WHERE email = $1
		ON CONFLICT (email) DO NOTHING`, email)
	return true, err
}
