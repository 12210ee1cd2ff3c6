package usecase

import (
	"context"
	"fmt"
	"strings"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
	"alumni-network-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	repo     domain.InterviewRepository
	validate *validator.Validate
}

func NewInterviewUsecase(repo domain.InterviewRepository, validate *validator.Validate) domain.InterviewUsecase {
	if validate == nil {
		validate = validation.New()
	}
	return &interviewUsecase{repo: repo, validate: validate}
}

func (u *interviewUsecase) List(ctx context.Context, f domain.InterviewFilter) (*domain.PaginatedResult[domain.Interview], error) {
	f.Pagination.Normalize()
	list, total, err := u.repo.List(ctx, strings.TrimSpace(f.Company), f.Pagination)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(list, total, f.Pagination), nil
}

// trimInterview strips the free-text keys so validation sees what is stored.
func trimInterview(req domain.CreateInterviewRequest) domain.CreateInterviewRequest {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Role = strings.TrimSpace(req.Role)
	req.Season = strings.TrimSpace(req.Season)
	return req
}

func newInterview(userID int64, req domain.CreateInterviewRequest) *domain.Interview {
	return &domain.Interview{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Role:        req.Role,
		Internship:  req.Internship,
		Season:      req.Season,
		Passed:      req.Passed,
		Round:       req.Round,
		Tips:        req.Tips,
		Overview:    req.Overview,
	}
}

func (u *interviewUsecase) Create(ctx context.Context, req domain.CreateInterviewRequest) (*domain.Interview, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	req = trimInterview(req)
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	iv := newInterview(userID, req)
	if err := u.repo.Create(ctx, iv); err != nil {
		return nil, apperror.Internal(err)
	}
	return iv, nil
}

// CreateBulk validates every entry before touching the database so a bad
// row fails the whole batch.
func (u *interviewUsecase) CreateBulk(ctx context.Context, reqs []domain.CreateInterviewRequest) (*domain.InterviewBatch, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, apperror.BadRequest("No interviews provided")
	}

	ivs := make([]*domain.Interview, 0, len(reqs))
	for i, req := range reqs {
		req = trimInterview(req)
		if err := u.validate.Struct(req); err != nil {
			details := validation.FormatValidationErrors(err)
			for j := range details {
				details[j] = fmt.Sprintf("data[%d]: %s", i, details[j])
			}
			ve := apperror.Validation(details)
			ve.Message = fmt.Sprintf("Invalid interview at index %d", i)
			return nil, ve
		}
		ivs = append(ivs, newInterview(userID, req))
	}

	total, err := u.repo.CreateBulk(ctx, ivs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	created := make([]domain.Interview, 0, len(ivs))
	for _, iv := range ivs {
		created = append(created, *iv)
	}
	return &domain.InterviewBatch{Data: created, Count: total}, nil
}
