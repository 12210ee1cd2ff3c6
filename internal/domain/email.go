package domain

import "context"

type UserEmail struct {
	Email     string `json:"email"`
	Preferred bool   `json:"preferred"`
	UserID    int64  `json:"user_id"`
}

type EmailList struct {
	Data  []UserEmail `json:"data"`
	Count int         `json:"count"`
}

type AddEmailRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Preferred bool   `json:"preferred"`
}

type SetPreferredEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type EmailRepository interface {
	// Add inserts e, clearing any other preferred address of the user first
	// when e.Preferred is set.
	Add(ctx context.Context, e *UserEmail) error
	Get(ctx context.Context, email string) (*UserEmail, error)
	ListByUser(ctx context.Context, userID int64) ([]UserEmail, error)
	SetPreferred(ctx context.Context, userID int64, email string) error
	Delete(ctx context.Context, userID int64, email string) (bool, error)
	// Preferred returns the user's preferred address, or "" if none.
	Preferred(ctx context.Context, userID int64) (string, error)
}

type EmailUsecase interface {
	Add(ctx context.Context, req AddEmailRequest) (*UserEmail, error)
	SetPreferred(ctx context.Context, req SetPreferredEmailRequest) (*UserEmail, error)
	Delete(ctx context.Context, email string) error
	List(ctx context.Context, userID int64) (*EmailList, error)
}
