package domain

import (
	"context"
	"time"
)

type Company struct {
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCompanyRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	ImageURL *string `json:"image_url" binding:"omitempty,http_url"`
}

type EmployeeCount struct {
	CompanyName   string `json:"company_name"`
	EmployeeCount int64  `json:"employee_count"`
}

const EmployeeCountsCacheKey = "companies:employee_counts"

type CompanyRepository interface {
	List(ctx context.Context, p Pagination) ([]Company, int64, error)
	Create(ctx context.Context, c *Company) error
	Get(ctx context.Context, name string) (*Company, error)
	UpdateLogo(ctx context.Context, name, url string) error
	// EmployeeCounts counts users whose current_company equals each company name.
	EmployeeCounts(ctx context.Context) ([]EmployeeCount, error)
	CurrentEmployees(ctx context.Context, name string, excludeUserID int64, p Pagination) ([]PublicProfile, int64, error)
	AllEmployees(ctx context.Context, name string, p Pagination) ([]PublicProfile, int64, error)
}

type CompanyUsecase interface {
	List(ctx context.Context, p Pagination) (*PaginatedResult[Company], error)
	Create(ctx context.Context, req CreateCompanyRequest) (*Company, error)
	Get(ctx context.Context, name string) (*Company, error)
	UploadLogo(ctx context.Context, name, filename string, data []byte) (*Company, error)
	EmployeeCounts(ctx context.Context) ([]EmployeeCount, error)
	CurrentEmployees(ctx context.Context, name string, p Pagination) (*PaginatedResult[PublicProfile], error)
	AllEmployees(ctx context.Context, name string, p Pagination) (*PaginatedResult[PublicProfile], error)
}
