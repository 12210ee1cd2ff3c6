package usecase

import (
	"context"
	"strings"
	"time"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
)

type eventUsecase struct {
	repo  domain.EventRepository
	audit *AuditTrail
	now   func() time.Time
}

func NewEventUsecase(repo domain.EventRepository, audit *AuditTrail) domain.EventUsecase {
	return &eventUsecase{repo: repo, audit: audit, now: time.Now}
}

func (u *eventUsecase) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	var after *time.Time
	if f.Upcoming {
		now := u.now().UTC()
		after = &now
	}
	events, err := u.repo.List(ctx, after)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return events, nil
}

func (u *eventUsecase) Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, apperror.BadRequest("Date must be an RFC 3339 timestamp")
	}
	e := &domain.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Date:        date.UTC(),
		Location:    strings.TrimSpace(req.Location),
		ImageURL:    req.ImageURL,
		CreatedBy:   &adminID,
	}
	if e.Title == "" || e.Description == "" || e.Location == "" {
		return nil, apperror.BadRequest("Title, description and location are required")
	}

	if err := u.repo.Create(ctx, e); err != nil {
		return nil, apperror.Internal(err)
	}
	u.audit.Record(ctx, adminID, domain.AuditCreateEvent, e.ID, map[string]interface{}{"title": e.Title})
	return e, nil
}

func (u *eventUsecase) Delete(ctx context.Context, id int64) error {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	ok, err := u.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("Event not found")
	}
	u.audit.Record(ctx, adminID, domain.AuditDeleteEvent, id, nil)
	return nil
}
