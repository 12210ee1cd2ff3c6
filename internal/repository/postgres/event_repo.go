package postgres

import (
	"context"
	"time"

	"alumni-network-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type eventRepo struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) domain.EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) List(ctx context.Context, after *time.Time) ([]domain.Event, error) {
	query := `SELECT id, title, description, date, location, image_url, created_by, created_at FROM events`
	args := []interface{}{}
	if after != nil {
		query += ` WHERE date >= $1`
		args = append(args, *after)
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.ImageURL, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) Create(ctx context.Context, e *domain.Event) error {
	return r.db.QueryRow(ctx, `INSERT INTO events (title, description, date, location, image_url, created_by)
	                            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		e.Title, e.Description, e.Date, e.Location, e.ImageURL, e.CreatedBy).Scan(&e.ID, &e.CreatedAt)
}

func (r *eventRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
