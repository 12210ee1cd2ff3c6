package domain

import (
	"context"
	"time"
)

// Interview is a member's write-up of one interview experience.
type Interview struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CompanyName string    `json:"company_name"`
	Role        string    `json:"role"`
	Internship  bool      `json:"internship"`
	Season      string    `json:"season"`
	Passed      bool      `json:"passed"`
	Round       *string   `json:"round"`
	Tips        *string   `json:"tips"`
	Overview    *string   `json:"overview"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateInterviewRequest struct {
	CompanyName string  `json:"company_name" binding:"required,min=1,max=255" validate:"required,min=1,max=255"`
	Role        string  `json:"role" binding:"required,min=1,max=255" validate:"required,min=1,max=255"`
	Internship  bool    `json:"internship"`
	Season      string  `json:"season" binding:"required,min=1,max=50" validate:"required,min=1,max=50"`
	Passed      bool    `json:"passed"`
	Round       *string `json:"round" binding:"omitempty,max=255" validate:"omitempty,max=255"`
	Tips        *string `json:"tips" binding:"omitempty,max=5000" validate:"omitempty,max=5000"`
	Overview    *string `json:"overview" binding:"omitempty,max=5000" validate:"omitempty,max=5000"`
}

// BulkInterviewRequest entries are validated individually so the failing
// index can be reported.
type BulkInterviewRequest struct {
	Data []CreateInterviewRequest `json:"data" binding:"required,min=1,max=500"`
}

type InterviewBatch struct {
	Data  []Interview `json:"data"`
	Count int64       `json:"count"`
}

type InterviewFilter struct {
	Company string `form:"company"`
	Pagination
}

type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error
	// CreateBulk inserts every row in one transaction and returns the table total.
	CreateBulk(ctx context.Context, ivs []*Interview) (int64, error)
	List(ctx context.Context, company string, p Pagination) ([]Interview, int64, error)
}

type InterviewUsecase interface {
	List(ctx context.Context, f InterviewFilter) (*PaginatedResult[Interview], error)
	Create(ctx context.Context, req CreateInterviewRequest) (*Interview, error)
	CreateBulk(ctx context.Context, reqs []CreateInterviewRequest) (*InterviewBatch, error)
}
