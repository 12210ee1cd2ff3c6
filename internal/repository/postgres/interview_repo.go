package postgres

import (
	"context"

	"alumni-network-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const insertInterviewQuery = `INSERT INTO interviews
	(user_id, company_name, role, internship, season, passed, round, tips, overview)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at`

func insertInterview(ctx context.Context, tx pgx.Tx, iv *domain.Interview) error {
	if err := ensureCompany(ctx, tx, iv.CompanyName); err != nil {
		return err
	}
	return tx.QueryRow(ctx, insertInterviewQuery,
		iv.UserID, iv.CompanyName, iv.Role, iv.Internship, iv.Season, iv.Passed,
		iv.Round, iv.Tips, iv.Overview,
	).Scan(&iv.ID, &iv.CreatedAt)
}

func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertInterview(ctx, tx, iv); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *interviewRepo) CreateBulk(ctx context.Context, ivs []*domain.Interview) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for _, iv := range ivs {
		if err := insertInterview(ctx, tx, iv); err != nil {
			return 0, err
		}
	}

	var total int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM interviews`).Scan(&total); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *interviewRepo) List(ctx context.Context, company string, p domain.Pagination) ([]domain.Interview, int64, error) {
	where := ""
	args := []interface{}{}
	if company != "" {
		where = "WHERE company_name = $1"
		args = append(args, company)
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM interviews "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limitIdx := len(args) + 1
	query := `SELECT id, user_id, company_name, role, internship, season, passed, round, tips, overview, created_at
	          FROM interviews ` + where + `
	          ORDER BY created_at DESC, id DESC LIMIT $` + itoa(limitIdx) + ` OFFSET $` + itoa(limitIdx+1)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []domain.Interview{}
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.CompanyName, &iv.Role, &iv.Internship, &iv.Season,
			&iv.Passed, &iv.Round, &iv.Tips, &iv.Overview, &iv.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, iv)
	}
	return list, total, rows.Err()
}
