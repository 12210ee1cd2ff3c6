package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"alumni-network-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// ListUsers returns every user, optionally narrowed by a name/email search
func (r *adminRepo) ListUsers(ctx context.Context, search string, p domain.Pagination) ([]domain.User, int64, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = `WHERE COALESCE(u.full_name, '') ILIKE $1 ESCAPE '\' OR u.email ILIKE $1 ESCAPE '\'`
		args = append(args, containsPattern(search))
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users u "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := fmt.Sprintf(`SELECT %s FROM users u %s ORDER BY u.id ASC LIMIT $%d OFFSET $%d`,
		userColumns, where, argIdx, argIdx+1)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

const pendingAlumniCondition = `u.is_alumni = FALSE AND u.profile_completed = TRUE AND u.alumni_status = 'unreviewed'`

func (r *adminRepo) ListPendingAlumni(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users u WHERE `+pendingAlumniCondition+` ORDER BY u.created_at ASC, u.id ASC`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *adminRepo) SetAlumniStatus(ctx context.Context, userID int64, isAlumni bool, status domain.AlumniStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_alumni = $2, alumni_status = $3, updated_at = NOW() WHERE id = $1`,
		userID, isAlumni, string(status))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *adminRepo) SetSuperuser(ctx context.Context, userID int64, isSuperuser bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_superuser = $2, updated_at = NOW() WHERE id = $1`, userID, isSuperuser)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *adminRepo) SetActive(ctx context.Context, userID int64, isActive bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, userID, isActive)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *adminRepo) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListAlumni feeds the spreadsheet export
func (r *adminRepo) ListAlumni(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users u WHERE u.is_alumni = TRUE
	                               ORDER BY u.full_name ASC NULLS LAST, u.id ASC`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *adminRepo) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *adminRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *adminRepo) CountAlumni(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE is_alumni = TRUE`)
}

func (r *adminRepo) CountPendingAlumni(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users u WHERE `+pendingAlumniCondition)
}

func (r *adminRepo) CountConnections(ctx context.Context, status domain.ConnectionStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM connection_requests WHERE status = $1`, string(status))
}

func (r *adminRepo) WriteAudit(ctx context.Context, entry domain.AuditLog) error {
	details := entry.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO audit_logs (actor_id, action, target_id, details)
	                         VALUES ($1, $2, $3, $4::jsonb)`, entry.ActorID, entry.Action, entry.TargetID, string(payload))
	return err
}

func (r *adminRepo) ListAudit(ctx context.Context, p domain.Pagination) ([]domain.AuditLog, int64, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM audit_logs`)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, COALESCE(actor_id, 0), action, target_id, details::text, created_at
	                               FROM audit_logs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var l domain.AuditLog
		var details string
		if err := rows.Scan(&l.ID, &l.ActorID, &l.Action, &l.TargetID, &details, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(details), &l.Details); err != nil {
			l.Details = map[string]interface{}{}
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
