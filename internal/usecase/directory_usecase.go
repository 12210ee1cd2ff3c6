package usecase

import (
	"context"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
)

type directoryUsecase struct {
	repo domain.DirectoryRepository
}

func NewDirectoryUsecase(repo domain.DirectoryRepository) domain.DirectoryUsecase {
	return &directoryUsecase{repo: repo}
}

func (u *directoryUsecase) Search(ctx context.Context, f domain.AlumniFilter) (*domain.PaginatedResult[domain.PublicProfile], error) {
	f.Normalize()
	profiles, total, err := u.repo.Search(ctx, f)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(profiles, total, f.Pagination), nil
}

func (u *directoryUsecase) Get(ctx context.Context, id int64) (*domain.PublicProfile, error) {
	profile, err := u.repo.GetVisible(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Alumnus not found")
	}
	return profile, nil
}
