package usecase

import (
	"context"
	"strings"
	"time"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
)

type employmentUsecase struct {
	repo  domain.EmploymentRepository
	cache domain.Cache
}

func NewEmploymentUsecase(repo domain.EmploymentRepository, cache domain.Cache) domain.EmploymentUsecase {
	return &employmentUsecase{repo: repo, cache: cache}
}

func (u *employmentUsecase) Create(ctx context.Context, req domain.CreateEmploymentRequest) (*domain.Employment, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	typ := domain.EmploymentType(strings.ToLower(strings.TrimSpace(req.Type)))
	if !typ.Valid() {
		return nil, apperror.BadRequest("Employment type must be 'full time' or 'internship'")
	}

	start, err := time.Parse(domain.DateLayout, req.Start)
	if err != nil {
		return nil, apperror.BadRequest("Start date must be formatted as YYYY-MM-DD")
	}
	var end *time.Time
	if req.End != nil && strings.TrimSpace(*req.End) != "" {
		parsed, err := time.Parse(domain.DateLayout, *req.End)
		if err != nil {
			return nil, apperror.BadRequest("End date must be formatted as YYYY-MM-DD")
		}
		if parsed.Before(start) {
			return nil, apperror.BadRequest("End date cannot be before start date")
		}
		end = &parsed
	}

	company := strings.TrimSpace(req.CompanyName)
	role := strings.TrimSpace(req.Role)
	if company == "" || role == "" {
		return nil, apperror.BadRequest("Company and role are required")
	}

	e := &domain.Employment{
		UserID:      userID,
		CompanyName: company,
		Role:        role,
		Type:        typ,
		Start:       start,
		End:         end,
	}
	if err := u.repo.Create(ctx, e); err != nil {
		return nil, apperror.Internal(err)
	}

	if e.Current() {
		invalidateEmployeeCounts(ctx, u.cache)
	}
	return e, nil
}

func (u *employmentUsecase) Delete(ctx context.Context, id int64) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	e, err := u.repo.Get(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if e == nil {
		return apperror.NotFound("Employment not found")
	}
	if e.UserID != userID {
		return apperror.Forbidden("You can only delete your own employment records")
	}

	if err := u.repo.Delete(ctx, e); err != nil {
		return apperror.Internal(err)
	}
	invalidateEmployeeCounts(ctx, u.cache)
	return nil
}

func (u *employmentUsecase) List(ctx context.Context, p domain.Pagination) (*domain.PaginatedResult[domain.Employment], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	p.Normalize()
	list, total, err := u.repo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(list, total, p), nil
}
