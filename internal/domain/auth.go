package domain

import (
	"context"
	"time"
)

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=8,max=40,bcrypt_len"`
	FullName *string `json:"full_name" binding:"omitempty,max=255,valid_name,no_emoji"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required,min=8,max=40"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=40,bcrypt_len"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// ClientMeta identifies the caller of a login for tracking and audit.
type ClientMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

// LoginGuard counts failed logins and blocks abusive subjects.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, email, ip string) error
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
	Verify(token string) (int64, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest, meta ClientMeta) (*Token, error)
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, token string) (*User, error)
	ChangePassword(ctx context.Context, req UpdatePasswordRequest) error
}
