package postgres

import (
	"context"

	"alumni-network-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type employmentRepo struct {
	db *pgxpool.Pool
}

func NewEmploymentRepository(db *pgxpool.Pool) domain.EmploymentRepository {
	return &employmentRepo{db: db}
}

// ensureCompany inserts the company row when it does not exist yet.
func ensureCompany(ctx context.Context, tx pgx.Tx, name string) error {
	_, err := tx.Exec(ctx, `INSERT INTO companies (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	return err
}

func (r *employmentRepo) Create(ctx context.Context, e *domain.Employment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := ensureCompany(ctx, tx, e.CompanyName); err != nil {
		return err
	}

	query := `INSERT INTO employments (user_id, company_name, role, type, start_date, end_date)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err = tx.QueryRow(ctx, query, e.UserID, e.CompanyName, e.Role, string(e.Type), e.Start, e.End).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return err
	}

	if e.Current() {
		_, err = tx.Exec(ctx, `UPDATE users SET current_company = $2, updated_at = NOW() WHERE id = $1`, e.UserID, e.CompanyName)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *employmentRepo) Get(ctx context.Context, id int64) (*domain.Employment, error) {
	query := `SELECT id, user_id, company_name, role, type, start_date, end_date, created_at
	          FROM employments WHERE id = $1`
	e, err := scanEmployment(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	return e, err
}

func (r *employmentRepo) Delete(ctx context.Context, e *domain.Employment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM employments WHERE id = $1`, e.ID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE users SET current_company = NULL, updated_at = NOW()
	                       WHERE id = $1 AND current_company = $2`, e.UserID, e.CompanyName)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *employmentRepo) ListByUser(ctx context.Context, userID int64, p domain.Pagination) ([]domain.Employment, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employments WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, company_name, role, type, start_date, end_date, created_at
	          FROM employments WHERE user_id = $1
	          ORDER BY start_date DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []domain.Employment{}
	for rows.Next() {
		e, err := scanEmployment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *e)
	}
	return list, total, rows.Err()
}

func scanEmployment(row pgx.Row) (*domain.Employment, error) {
	var e domain.Employment
	var typ string
	if err := row.Scan(&e.ID, &e.UserID, &e.CompanyName, &e.Role, &typ, &e.Start, &e.End, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Type = domain.EmploymentType(typ)
	return &e, nil
}
