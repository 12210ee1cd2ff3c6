package postgres

import (
	"context"
	"fmt"
	"strings"

	"alumni-network-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type directoryRepo struct {
	db *pgxpool.Pool
}

func NewDirectoryRepository(db *pgxpool.Pool) domain.DirectoryRepository {
	return &directoryRepo{db: db}
}

// buildDirectoryFilter renders the WHERE clause for a directory query. Hidden
// and deactivated profiles never match.
func buildDirectoryFilter(f domain.AlumniFilter) (string, []interface{}) {
	conditions := []string{"u.profile_visible = TRUE", "u.is_active = TRUE"}
	var args []interface{}
	argIdx := 1

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(
			COALESCE(u.full_name, '') ILIKE $%[1]d ESCAPE '\' OR
			u.email ILIKE $%[1]d ESCAPE '\' OR
			COALESCE(u.current_company, '') ILIKE $%[1]d ESCAPE '\' OR
			COALESCE(u.role_title, '') ILIKE $%[1]d ESCAPE '\' OR
			COALESCE(u.bio, '') ILIKE $%[1]d ESCAPE '\')`, argIdx))
		args = append(args, containsPattern(f.Search))
		argIdx++
	}
	if f.Location != "" {
		conditions = append(conditions, fmt.Sprintf(`COALESCE(u.location, '') ILIKE $%d ESCAPE '\'`, argIdx))
		args = append(args, containsPattern(f.Location))
		argIdx++
	}
	if f.Company != "" {
		conditions = append(conditions, fmt.Sprintf(`COALESCE(u.current_company, '') ILIKE $%d ESCAPE '\'`, argIdx))
		args = append(args, containsPattern(f.Company))
		argIdx++
	}
	if f.GraduationYear != nil {
		conditions = append(conditions, fmt.Sprintf("u.graduation_year = $%d", argIdx))
		args = append(args, *f.GraduationYear)
		argIdx++
	}

	flags := []struct {
		column string
		value  *bool
	}{
		{"u.open_to_coffee_chats", f.OpenToCoffeeChats},
		{"u.open_to_mentorship", f.OpenToMentorship},
		{"u.available_for_referrals", f.AvailableForReferrals},
		{"u.is_alumni", f.IsAlumni},
	}
	for _, flag := range flags {
		if flag.value == nil {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", flag.column, argIdx))
		args = append(args, *flag.value)
		argIdx++
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *directoryRepo) Search(ctx context.Context, f domain.AlumniFilter) ([]domain.PublicProfile, int64, error) {
	where, args := buildDirectoryFilter(f)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users u "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := fmt.Sprintf(`SELECT %s FROM users u %s
		ORDER BY u.full_name ASC NULLS LAST, u.id ASC
		LIMIT $%d OFFSET $%d`, profileColumns, where, argIdx, argIdx+1)
	args = append(args, f.PageSize, f.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	profiles, err := collectProfiles(rows)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *directoryRepo) GetVisible(ctx context.Context, id int64) (*domain.PublicProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM users u
	          WHERE u.id = $1 AND u.profile_visible = TRUE AND u.is_active = TRUE`
	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	return p, err
}
