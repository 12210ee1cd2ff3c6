package postgres

import (
	"context"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type processRepo struct {
	db *pgxpool.Pool
}

func NewProcessRepository(db *pgxpool.Pool) domain.ProcessRepository {
	return &processRepo{db: db}
}

func (r *processRepo) ListPositions(ctx context.Context, company string) ([]domain.InterviewPosition, error) {
	query := `SELECT id, company_name, title, created_by, created_at FROM interview_positions`
	args := []interface{}{}
	if company != "" {
		query += ` WHERE company_name = $1`
		args = append(args, company)
	}
	query += ` ORDER BY company_name ASC, title ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := []domain.InterviewPosition{}
	for rows.Next() {
		var p domain.InterviewPosition
		if err := rows.Scan(&p.ID, &p.CompanyName, &p.Title, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (r *processRepo) ListRounds(ctx context.Context, positionIDs []int64) ([]domain.InterviewRound, error) {
	if len(positionIDs) == 0 {
		return []domain.InterviewRound{}, nil
	}
	query := `SELECT id, position_id, round_name, description, difficulty, sequence, created_by, created_at
	          FROM interview_rounds WHERE position_id = ANY($1)
	          ORDER BY position_id, sequence`
	rows, err := r.db.Query(ctx, query, pq.Array(positionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := []domain.InterviewRound{}
	for rows.Next() {
		var rd domain.InterviewRound
		var difficulty string
		if err := rows.Scan(&rd.ID, &rd.PositionID, &rd.RoundName, &rd.Description, &difficulty,
			&rd.Sequence, &rd.CreatedBy, &rd.CreatedAt); err != nil {
			return nil, err
		}
		rd.Difficulty = domain.Difficulty(difficulty)
		rounds = append(rounds, rd)
	}
	return rounds, rows.Err()
}

func (r *processRepo) ListTips(ctx context.Context, roundIDs []int64) ([]domain.InterviewTip, error) {
	if len(roundIDs) == 0 {
		return []domain.InterviewTip{}, nil
	}
	query := `SELECT id, round_id, tip, created_by, created_at
	          FROM interview_tips WHERE round_id = ANY($1) ORDER BY round_id, id`
	rows, err := r.db.Query(ctx, query, pq.Array(roundIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tips := []domain.InterviewTip{}
	for rows.Next() {
		var t domain.InterviewTip
		if err := rows.Scan(&t.ID, &t.RoundID, &t.Tip, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}

func (r *processRepo) CreatePosition(ctx context.Context, p *domain.InterviewPosition) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := ensureCompany(ctx, tx, p.CompanyName); err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `INSERT INTO interview_positions (company_name, title, created_by)
	                         VALUES ($1, $2, $3) RETURNING id, created_at`,
		p.CompanyName, p.Title, p.CreatedBy).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Position already exists for this company")
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *processRepo) GetPosition(ctx context.Context, id int64) (*domain.InterviewPosition, error) {
	var p domain.InterviewPosition
	err := r.db.QueryRow(ctx, `SELECT id, company_name, title, created_by, created_at
	                            FROM interview_positions WHERE id = $1`, id).
		Scan(&p.ID, &p.CompanyName, &p.Title, &p.CreatedBy, &p.CreatedAt)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateRound locks the parent position so concurrent inserts get distinct
// sequence numbers.
func (r *processRepo) CreateRound(ctx context.Context, rd *domain.InterviewRound) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var locked int64
	if err := tx.QueryRow(ctx, `SELECT id FROM interview_positions WHERE id = $1 FOR UPDATE`, rd.PositionID).Scan(&locked); err != nil {
		if isNoRows(err) {
			return apperror.NotFound("Position not found")
		}
		return err
	}

	query := `INSERT INTO interview_rounds (position_id, round_name, description, difficulty, sequence, created_by)
	          SELECT $1, $2, $3, $4, COALESCE(MAX(sequence), 0) + 1, $5
	          FROM interview_rounds WHERE position_id = $1
	          RETURNING id, sequence, created_at`
	err = tx.QueryRow(ctx, query, rd.PositionID, rd.RoundName, rd.Description, string(rd.Difficulty), rd.CreatedBy).
		Scan(&rd.ID, &rd.Sequence, &rd.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *processRepo) GetRound(ctx context.Context, id int64) (*domain.InterviewRound, error) {
	var rd domain.InterviewRound
	var difficulty string
	err := r.db.QueryRow(ctx, `SELECT id, position_id, round_name, description, difficulty, sequence, created_by, created_at
	                            FROM interview_rounds WHERE id = $1`, id).
		Scan(&rd.ID, &rd.PositionID, &rd.RoundName, &rd.Description, &difficulty, &rd.Sequence, &rd.CreatedBy, &rd.CreatedAt)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rd.Difficulty = domain.Difficulty(difficulty)
	return &rd, nil
}

func (r *processRepo) CreateTip(ctx context.Context, t *domain.InterviewTip) error {
	return r.db.QueryRow(ctx, `INSERT INTO interview_tips (round_id, tip, created_by)
	                            VALUES ($1, $2, $3) RETURNING id, created_at`,
		t.RoundID, t.Tip, t.CreatedBy).Scan(&t.ID, &t.CreatedAt)
}

func (r *processRepo) GetTip(ctx context.Context, id int64) (*domain.InterviewTip, error) {
	var t domain.InterviewTip
	err := r.db.QueryRow(ctx, `SELECT id, round_id, tip, created_by, created_at FROM interview_tips WHERE id = $1`, id).
		Scan(&t.ID, &t.RoundID, &t.Tip, &t.CreatedBy, &t.CreatedAt)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *processRepo) DeleteTip(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM interview_tips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Tip not found")
	}
	return nil
}
