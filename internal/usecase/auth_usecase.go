package usecase

import (
	"context"
	"strconv"
	"strings"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
	"alumni-network-backend/pkg/auth"
	"alumni-network-backend/pkg/logger"
	"alumni-network-backend/pkg/security"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   domain.TokenIssuer
	guard    domain.LoginGuard
	secLog   *security.SecurityLogger
}

// NewAuthUsecase wires credential checks. guard may be nil to disable
// failed-login tracking.
func NewAuthUsecase(userRepo domain.UserRepository, tokens domain.TokenIssuer, guard domain.LoginGuard, secLog *security.SecurityLogger) domain.AuthUsecase {
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	return &authUsecase{userRepo: userRepo, tokens: tokens, guard: guard, secLog: secLog}
}

func (u *authUsecase) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Password) > auth.MaxPasswordBytes {
		return nil, apperror.BadRequest("Password must be at most 72 bytes")
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("The user with this email already exists in the system")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
		AlumniStatus:   domain.AlumniStatusUnreviewed,
		Majors:         []string{},
	}
	if req.FullName != nil {
		if name := strings.TrimSpace(*req.FullName); name != "" {
			user.FullName = &name
		}
	}
	user.RefreshProfileCompleted()

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.secLog.Log(ctx, security.SecurityEvent{
		Event:        security.EventUserRegistered,
		SubjectType:  "email",
		SubjectValue: security.MaskEmail(email),
	})
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req domain.LoginRequest, meta domain.ClientMeta) (*domain.Token, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if u.guard != nil {
		blocked, err := u.guard.IsBlocked(ctx, email, meta.IP)
		if err != nil {
			logger.Log.Warn("login guard unavailable", "error", err)
		}
		if blocked {
			u.secLog.LogLoginBlocked(ctx, email, meta.IP, meta.UserAgent, meta.RequestID)
			return nil, apperror.TooManyRequests("Too many failed login attempts, please try again later")
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		u.recordFailure(ctx, email, meta)
		return nil, apperror.Unauthorized("Incorrect email or password")
	}
	if !user.IsActive {
		u.secLog.LogLoginFailed(ctx, email, meta.IP, meta.UserAgent, meta.RequestID, "inactive_user")
		return nil, apperror.Forbidden("Inactive user")
	}

	if u.guard != nil {
		if err := u.guard.ClearAttempts(ctx, email, meta.IP); err != nil {
			logger.Log.Warn("failed to clear login attempts", "error", err)
		}
	}

	token, expiresAt, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.secLog.LogLoginSuccess(ctx, user.ID, meta.IP, meta.UserAgent, meta.RequestID)
	return &domain.Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

func (u *authUsecase) recordFailure(ctx context.Context, email string, meta domain.ClientMeta) {
	u.secLog.LogLoginFailed(ctx, email, meta.IP, meta.UserAgent, meta.RequestID, "invalid_credentials")
	if u.guard == nil {
		return
	}
	if _, _, err := u.guard.RecordFailedAttempt(ctx, email, meta.IP, meta.UserAgent, meta.RequestID); err != nil {
		logger.Log.Warn("failed to record login attempt", "error", err)
	}
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := u.tokens.Verify(token)
	if err != nil {
		return nil, apperror.Unauthorized("Could not validate credentials")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("User not found")
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("Inactive user")
	}
	return user, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, req domain.UpdatePasswordRequest) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}
	if len(req.NewPassword) > auth.MaxPasswordBytes {
		return apperror.BadRequest("New password must be at most 72 bytes")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	if !auth.CheckPassword(user.HashedPassword, req.CurrentPassword) {
		return apperror.BadRequest("Incorrect password")
	}
	if req.CurrentPassword == req.NewPassword {
		return apperror.BadRequest("New password cannot be the same as the current one")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return apperror.Internal(err)
	}

	u.secLog.Log(ctx, security.SecurityEvent{
		Event:        security.EventPasswordChange,
		SubjectType:  "user_id",
		SubjectValue: security.HashValue(strconv.FormatInt(userID, 10)),
	})
	return nil
}
