package usecase

import (
	"context"
	"strings"
	"time"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
	"alumni-network-backend/pkg/logger"
)

const employeeCountsTTL = 5 * time.Minute

type companyUsecase struct {
	repo   domain.CompanyRepository
	cache  domain.Cache
	images *imagePipeline
	audit  *AuditTrail
}

func NewCompanyUsecase(
	repo domain.CompanyRepository,
	cache domain.Cache,
	uploads ImageUploads,
	audit *AuditTrail,
) domain.CompanyUsecase {
	return &companyUsecase{
		repo:   repo,
		cache:  cache,
		images: newImagePipeline(uploads),
		audit:  audit,
	}
}

func (u *companyUsecase) List(ctx context.Context, p domain.Pagination) (*domain.PaginatedResult[domain.Company], error) {
	p.Normalize()
	companies, total, err := u.repo.List(ctx, p)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(companies, total, p), nil
}

func (u *companyUsecase) Create(ctx context.Context, req domain.CreateCompanyRequest) (*domain.Company, error) {
	if _, err := actorID(ctx); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.BadRequest("Company name is required")
	}

	c := &domain.Company{Name: name, ImageURL: req.ImageURL}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	invalidateEmployeeCounts(ctx, u.cache)
	return c, nil
}

func (u *companyUsecase) Get(ctx context.Context, name string) (*domain.Company, error) {
	c, err := u.repo.Get(ctx, name)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, apperror.NotFound("Company not found")
	}
	return c, nil
}

func (u *companyUsecase) UploadLogo(ctx context.Context, name, filename string, data []byte) (*domain.Company, error) {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	c, err := u.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	url, err := u.images.upload(ctx, adminID, "company-logos", filename, data)
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateLogo(ctx, c.Name, url); err != nil {
		return nil, err
	}
	c.ImageURL = &url

	u.audit.Record(ctx, adminID, domain.AuditUpdateLogo, 0, map[string]interface{}{"company": c.Name})
	return c, nil
}

func (u *companyUsecase) EmployeeCounts(ctx context.Context) ([]domain.EmployeeCount, error) {
	if u.cache != nil {
		var cached []domain.EmployeeCount
		hit, err := u.cache.Get(ctx, domain.EmployeeCountsCacheKey, &cached)
		if err != nil {
			logger.Log.Warn("employee counts cache read failed", "error", err)
		}
		if hit {
			return cached, nil
		}
	}

	counts, err := u.repo.EmployeeCounts(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, domain.EmployeeCountsCacheKey, counts, employeeCountsTTL); err != nil {
			logger.Log.Warn("employee counts cache write failed", "error", err)
		}
	}
	return counts, nil
}

func (u *companyUsecase) CurrentEmployees(ctx context.Context, name string, p domain.Pagination) (*domain.PaginatedResult[domain.PublicProfile], error) {
	callerID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	p.Normalize()
	profiles, total, err := u.repo.CurrentEmployees(ctx, name, callerID, p)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(profiles, total, p), nil
}

func (u *companyUsecase) AllEmployees(ctx context.Context, name string, p domain.Pagination) (*domain.PaginatedResult[domain.PublicProfile], error) {
	p.Normalize()
	profiles, total, err := u.repo.AllEmployees(ctx, name, p)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(profiles, total, p), nil
}
