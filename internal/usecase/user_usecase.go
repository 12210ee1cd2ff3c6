package usecase

import (
	"context"
	"fmt"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
)

type userUsecase struct {
	userRepo      domain.UserRepository
	emailRepo     domain.EmailRepository
	directoryRepo domain.DirectoryRepository
	cache         domain.Cache
	images        *imagePipeline
}

func NewUserUsecase(
	userRepo domain.UserRepository,
	emailRepo domain.EmailRepository,
	directoryRepo domain.DirectoryRepository,
	cache domain.Cache,
	uploads ImageUploads,
) domain.UserUsecase {
	return &userUsecase{
		userRepo:      userRepo,
		emailRepo:     emailRepo,
		directoryRepo: directoryRepo,
		cache:         cache,
		images:        newImagePipeline(uploads),
	}
}

func (u *userUsecase) loadActor(ctx context.Context) (*domain.User, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *userUsecase) GetMe(ctx context.Context) (*domain.User, error) {
	return u.loadActor(ctx)
}

func (u *userUsecase) UpdateMe(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := u.loadActor(ctx)
	if err != nil {
		return nil, err
	}

	previousEmail := user.Email
	previousCompany := stringOrEmpty(user.CurrentCompany)
	req.Apply(user)

	if user.Email != previousEmail {
		if err := u.ensureEmailAvailable(ctx, user.ID, user.Email); err != nil {
			return nil, err
		}
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if stringOrEmpty(user.CurrentCompany) != previousCompany {
		invalidateEmployeeCounts(ctx, u.cache)
	}
	return user, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ensureEmailAvailable rejects an address owned by another account.
func (u *userUsecase) ensureEmailAvailable(ctx context.Context, userID int64, email string) error {
	owner, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return apperror.Internal(err)
	}
	if owner != nil && owner.ID != userID {
		return apperror.Conflict("User with this email already exists")
	}
	registered, err := u.emailRepo.Get(ctx, email)
	if err != nil {
		return apperror.Internal(err)
	}
	if registered != nil && registered.UserID != userID {
		return apperror.Conflict("User with this email already exists")
	}
	return nil
}

// GetProfile shows visible, active profiles to everyone and any profile to
// its owner or an admin.
func (u *userUsecase) GetProfile(ctx context.Context, id int64) (*domain.PublicProfile, error) {
	callerID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	if callerID == id || isAdmin(ctx) {
		user, err := u.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if user == nil {
			return nil, apperror.NotFound("User not found")
		}
		profile := user.Public()
		return &profile, nil
	}

	profile, err := u.directoryRepo.GetVisible(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("User not found")
	}
	return profile, nil
}

func (u *userUsecase) UploadProfileImage(ctx context.Context, filename string, data []byte) (*domain.User, error) {
	user, err := u.loadActor(ctx)
	if err != nil {
		return nil, err
	}

	url, err := u.images.upload(ctx, user.ID, fmt.Sprintf("profile-images/%d", user.ID), filename, data)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.UpdateProfileImage(ctx, user.ID, url); err != nil {
		return nil, apperror.Internal(err)
	}
	user.ProfileImage = &url
	return user, nil
}

func (u *userUsecase) DeleteMe(ctx context.Context) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}
	if err := u.userRepo.Delete(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	invalidateEmployeeCounts(ctx, u.cache)
	return nil
}
