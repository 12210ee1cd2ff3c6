package postgres

import (
	"context"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) List(ctx context.Context, p domain.Pagination) ([]domain.Company, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT name, image_url, created_at FROM companies
	                               ORDER BY name ASC LIMIT $1 OFFSET $2`, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.Name, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

func (r *companyRepo) Create(ctx context.Context, c *domain.Company) error {
	err := r.db.QueryRow(ctx, `INSERT INTO companies (name, image_url) VALUES ($1, $2) RETURNING created_at`,
		c.Name, c.ImageURL).Scan(&c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Company already exists")
		}
		return err
	}
	return nil
}

func (r *companyRepo) Get(ctx context.Context, name string) (*domain.Company, error) {
	var c domain.Company
	err := r.db.QueryRow(ctx, `SELECT name, image_url, created_at FROM companies WHERE name = $1`, name).
		Scan(&c.Name, &c.ImageURL, &c.CreatedAt)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) UpdateLogo(ctx context.Context, name, url string) error {
	tag, err := r.db.Exec(ctx, `UPDATE companies SET image_url = $2 WHERE name = $1`, name, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Company not found")
	}
	return nil
}

// employeeCountsSQL counts active users only, matching CurrentEmployees.
const employeeCountsSQL = `
		SELECT c.name, COUNT(u.id) AS employee_count
		FROM companies c
		LEFT JOIN users u ON u.current_company = c.name AND u.is_active = TRUE
		GROUP BY c.name
		ORDER BY employee_count DESC, c.name ASC`

func (r *companyRepo) EmployeeCounts(ctx context.Context) ([]domain.EmployeeCount, error) {
	rows, err := r.db.Query(ctx, employeeCountsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.EmployeeCount{}
	for rows.Next() {
		var ec domain.EmployeeCount
		if err := rows.Scan(&ec.CompanyName, &ec.EmployeeCount); err != nil {
			return nil, err
		}
		counts = append(counts, ec)
	}
	return counts, rows.Err()
}

func (r *companyRepo) CurrentEmployees(ctx context.Context, name string, excludeUserID int64, p domain.Pagination) ([]domain.PublicProfile, int64, error) {
	where := `WHERE u.current_company = $1 AND u.id <> $2 AND u.is_active = TRUE`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users u `+where, name, excludeUserID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + profileColumns + ` FROM users u ` + where + `
	          ORDER BY u.full_name ASC NULLS LAST, u.id ASC LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, name, excludeUserID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	profiles, err := collectProfiles(rows)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *companyRepo) AllEmployees(ctx context.Context, name string, p domain.Pagination) ([]domain.PublicProfile, int64, error) {
	where := `WHERE u.is_active = TRUE AND EXISTS (
	              SELECT 1 FROM employments e WHERE e.user_id = u.id AND e.company_name = $1)`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users u `+where, name).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + profileColumns + ` FROM users u ` + where + `
	          ORDER BY u.full_name ASC NULLS LAST, u.id ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, name, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	profiles, err := collectProfiles(rows)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
