package usecase

import (
	"context"
	"time"

	"alumni-network-backend/internal/domain"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	db    Pinger
	redis func(ctx context.Context) error
}

// NewHealthUsecase reports dependency status. redisCheck is nil when Redis is
// not configured.
func NewHealthUsecase(db Pinger, redisCheck func(ctx context.Context) error) domain.HealthUsecase {
	return &healthUsecase{db: db, redis: redisCheck}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := domain.HealthStatus{Database: "ok", Redis: "disabled"}
	if u.db == nil || u.db.Ping(ctx) != nil {
		status.Database = "down"
	}
	if u.redis != nil {
		status.Redis = "ok"
		if err := u.redis(ctx); err != nil {
			status.Redis = "down"
		}
	}
	return status
}
