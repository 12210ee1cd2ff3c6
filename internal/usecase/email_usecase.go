package usecase

import (
	"context"
	"strings"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
)

type emailUsecase struct {
	repo domain.EmailRepository
}

func NewEmailUsecase(repo domain.EmailRepository) domain.EmailUsecase {
	return &emailUsecase{repo: repo}
}

func (u *emailUsecase) Add(ctx context.Context, req domain.AddEmailRequest) (*domain.UserEmail, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	address := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := u.repo.Get(ctx, address)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already registered")
	}

	e := &domain.UserEmail{Email: address, UserID: userID, Preferred: req.Preferred}
	if err := u.repo.Add(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (u *emailUsecase) SetPreferred(ctx context.Context, req domain.SetPreferredEmailRequest) (*domain.UserEmail, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	e, err := u.repo.Get(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if e == nil || e.UserID != userID {
		return nil, apperror.NotFound("Email not found")
	}
	if e.Preferred {
		return e, nil
	}

	if err := u.repo.SetPreferred(ctx, userID, e.Email); err != nil {
		return nil, err
	}
	e.Preferred = true
	return e, nil
}

func (u *emailUsecase) Delete(ctx context.Context, email string) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	e, err := u.repo.Get(ctx, strings.TrimSpace(email))
	if err != nil {
		return apperror.Internal(err)
	}
	if e == nil || e.UserID != userID {
		return apperror.NotFound("Email not found")
	}
	if e.Preferred {
		return apperror.BadRequest("The preferred email cannot be removed, choose another preferred email first")
	}

	deleted, err := u.repo.Delete(ctx, userID, e.Email)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound("Email not found")
	}
	return nil
}

func (u *emailUsecase) List(ctx context.Context, userID int64) (*domain.EmailList, error) {
	if _, err := actorID(ctx); err != nil {
		return nil, err
	}
	emails, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.EmailList{Data: emails, Count: len(emails)}, nil
}
