package postgres

import (
	"context"
	"fmt"
	"time"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type connectionRepo struct {
	db *pgxpool.Pool
}

func NewConnectionRepository(db *pgxpool.Pool) domain.ConnectionRepository {
	return &connectionRepo{db: db}
}

const connectionColumns = `c.id, c.requester_id, c.requested_id, c.status, c.message,
	c.created_at, c.updated_at, c.responded_at`

func connectionScanTargets(cr *domain.ConnectionRequest, status *string) []interface{} {
	return []interface{}{
		&cr.ID, &cr.RequesterID, &cr.RequestedID, status, &cr.Message,
		&cr.CreatedAt, &cr.UpdatedAt, &cr.RespondedAt,
	}
}

func scanConnection(row pgx.Row) (*domain.ConnectionRequest, error) {
	var cr domain.ConnectionRequest
	var status string
	if err := row.Scan(connectionScanTargets(&cr, &status)...); err != nil {
		return nil, err
	}
	cr.Status = domain.ConnectionStatus(status)
	return &cr, nil
}

func (r *connectionRepo) Create(ctx context.Context, cr *domain.ConnectionRequest) error {
	query := `INSERT INTO connection_requests (requester_id, requested_id, status, message)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, cr.RequesterID, cr.RequestedID, string(cr.Status), cr.Message).
		Scan(&cr.ID, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return apperror.Conflict("Connection request already exists")
		case pgForeignKeyViolation:
			return apperror.NotFound("User not found")
		case pgCheckViolation:
			return apperror.BadRequest("You cannot send a connection request to yourself")
		}
		return err
	}
	return nil
}

func (r *connectionRepo) GetByID(ctx context.Context, id int64) (*domain.ConnectionRequest, error) {
	cr, err := scanConnection(r.db.QueryRow(ctx, `SELECT `+connectionColumns+` FROM connection_requests c WHERE c.id = $1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	return cr, err
}

func (r *connectionRepo) GetByPair(ctx context.Context, requesterID, requestedID int64) (*domain.ConnectionRequest, error) {
	query := `SELECT ` + connectionColumns + ` FROM connection_requests c
	          WHERE c.requester_id = $1 AND c.requested_id = $2`
	cr, err := scanConnection(r.db.QueryRow(ctx, query, requesterID, requestedID))
	if isNoRows(err) {
		return nil, nil
	}
	return cr, err
}

func (r *connectionRepo) Reopen(ctx context.Context, id int64, message *string) (*domain.ConnectionRequest, error) {
	query := `UPDATE connection_requests c
	          SET status = 'pending', message = $2, responded_at = NULL, updated_at = NOW()
	          WHERE c.id = $1 AND c.status = 'declined'
	          RETURNING ` + connectionColumns
	cr, err := scanConnection(r.db.QueryRow(ctx, query, id, message))
	if isNoRows(err) {
		return nil, apperror.Conflict("Connection request already exists")
	}
	return cr, err
}

func (r *connectionRepo) Transition(ctx context.Context, id int64, from, to domain.ConnectionStatus, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE connection_requests
	                            SET status = $3, responded_at = $4, updated_at = $4
	                            WHERE id = $1 AND status = $2`, id, string(from), string(to), at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *connectionRepo) DeletePending(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM connection_requests WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *connectionRepo) ListIncoming(ctx context.Context, userID int64, status *domain.ConnectionStatus) ([]domain.ConnectionView, error) {
	return r.listViews(ctx, "c.requested_id = $1", "c.requester_id", userID, status)
}

func (r *connectionRepo) ListOutgoing(ctx context.Context, userID int64, status *domain.ConnectionStatus) ([]domain.ConnectionView, error) {
	return r.listViews(ctx, "c.requester_id = $1", "c.requested_id", userID, status)
}

func (r *connectionRepo) ListAccepted(ctx context.Context, userID int64) ([]domain.ConnectionView, error) {
	accepted := domain.ConnectionAccepted
	return r.listViews(ctx,
		"(c.requester_id = $1 OR c.requested_id = $1)",
		"CASE WHEN c.requester_id = $1 THEN c.requested_id ELSE c.requester_id END",
		userID, &accepted)
}

// listViews joins each matching request with the counterpart's profile,
// newest first.
func (r *connectionRepo) listViews(ctx context.Context, cond, counterpart string, userID int64, status *domain.ConnectionStatus) ([]domain.ConnectionView, error) {
	args := []interface{}{userID}
	if status != nil {
		cond += " AND c.status = $2"
		args = append(args, string(*status))
	}

	query := fmt.Sprintf(`SELECT %s, %s
		FROM connection_requests c
		JOIN users u ON u.id = %s
		WHERE %s
		ORDER BY c.created_at DESC, c.id DESC`, connectionColumns, profileColumns, counterpart, cond)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.ConnectionView{}
	for rows.Next() {
		var v domain.ConnectionView
		var st string
		var majors []string
		targets := append(connectionScanTargets(&v.ConnectionRequest, &st), profileScanTargets(&v.Counterpart, &majors)...)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		v.Status = domain.ConnectionStatus(st)
		v.Counterpart.Majors = nonNilStrings(majors)
		views = append(views, v)
	}
	return views, rows.Err()
}
