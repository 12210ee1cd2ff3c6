package domain

import (
	"context"
	"time"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full time"
	EmploymentInternship EmploymentType = "internship"
)

func (t EmploymentType) Valid() bool {
	return t == EmploymentFullTime || t == EmploymentInternship
}

// DateLayout is the wire format of employment dates.
const DateLayout = "2006-01-02"

type Employment struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	CompanyName string         `json:"company_name"`
	Role        string         `json:"role"`
	Type        EmploymentType `json:"type"`
	Start       time.Time      `json:"start"`
	End         *time.Time     `json:"end"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Current reports whether the record is open-ended.
func (e *Employment) Current() bool {
	return e.End == nil
}

type CreateEmploymentRequest struct {
	CompanyName string  `json:"company_name" binding:"required,min=1,max=255"`
	Role        string  `json:"role" binding:"required,min=1,max=255"`
	Type        string  `json:"type" binding:"required"`
	Start       string  `json:"start" binding:"required,datetime=2006-01-02"`
	End         *string `json:"end" binding:"omitempty,datetime=2006-01-02"`
}

type EmploymentRepository interface {
	// Create ensures the company exists, inserts e and, for open-ended records,
	// sets the user's current company, all in one transaction.
	Create(ctx context.Context, e *Employment) error
	Get(ctx context.Context, id int64) (*Employment, error)
	// Delete removes e and clears the owner's current company when it matches.
	Delete(ctx context.Context, e *Employment) error
	ListByUser(ctx context.Context, userID int64, p Pagination) ([]Employment, int64, error)
}

type EmploymentUsecase interface {
	Create(ctx context.Context, req CreateEmploymentRequest) (*Employment, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p Pagination) (*PaginatedResult[Employment], error)
}
