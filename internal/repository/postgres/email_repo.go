package postgres

import (
	"context"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type emailRepo struct {
	db *pgxpool.Pool
}

func NewEmailRepository(db *pgxpool.Pool) domain.EmailRepository {
	return &emailRepo{db: db}
}

const (
	clearPreferredSQL = `UPDATE emails SET preferred = FALSE WHERE user_id = $1 AND preferred`
	markPreferredSQL  = `UPDATE emails SET preferred = TRUE WHERE user_id = $1 AND email = $2`
	insertEmailSQL    = `INSERT INTO emails (email, user_id, preferred) VALUES ($1, $2, $3)`
)

// execer is satisfied by pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *emailRepo) Add(ctx context.Context, e *domain.UserEmail) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertEmail(ctx, tx, e); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// insertEmail stores a notification address. Only the emails table is
// written; users.email stays the login address.
func insertEmail(ctx context.Context, db execer, e *domain.UserEmail) error {
	if e.Preferred {
		if _, err := db.Exec(ctx, clearPreferredSQL, e.UserID); err != nil {
			return err
		}
	}
	if _, err := db.Exec(ctx, insertEmailSQL, e.Email, e.UserID, e.Preferred); err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Email already registered")
		}
		return err
	}
	return nil
}

func (r *emailRepo) Get(ctx context.Context, email string) (*domain.UserEmail, error) {
	var e domain.UserEmail
	err := r.db.QueryRow(ctx, `SELECT email, user_id, preferred FROM emails WHERE LOWER(email) = LOWER($1)`, email).
		Scan(&e.Email, &e.UserID, &e.Preferred)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *emailRepo) ListByUser(ctx context.Context, userID int64) ([]domain.UserEmail, error) {
	rows, err := r.db.Query(ctx, `SELECT email, user_id, preferred FROM emails
	                               WHERE user_id = $1 ORDER BY preferred DESC, email ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []domain.UserEmail{}
	for rows.Next() {
		var e domain.UserEmail
		if err := rows.Scan(&e.Email, &e.UserID, &e.Preferred); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

// SetPreferred swaps the preferred flag within one transaction.
func (r *emailRepo) SetPreferred(ctx context.Context, userID int64, email string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := swapPreferred(ctx, tx, userID, email); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func swapPreferred(ctx context.Context, db execer, userID int64, email string) error {
	if _, err := db.Exec(ctx, clearPreferredSQL, userID); err != nil {
		return err
	}
	tag, err := db.Exec(ctx, markPreferredSQL, userID, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Email not found")
	}
	return nil
}

func (r *emailRepo) Delete(ctx context.Context, userID int64, email string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM emails WHERE user_id = $1 AND email = $2`, userID, email)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *emailRepo) Preferred(ctx context.Context, userID int64) (string, error) {
	var email string
	err := r.db.QueryRow(ctx, `SELECT email FROM emails WHERE user_id = $1 AND preferred`, userID).Scan(&email)
	if isNoRows(err) {
		return "", nil
	}
	return email, err
}
