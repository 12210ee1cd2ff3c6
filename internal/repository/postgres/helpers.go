package postgres

import (
	"errors"
	"strconv"
	"strings"

	"alumni-network-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// likeEscaper neutralises LIKE metacharacters so user input is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for ILIKE.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// userColumns is the full users projection read by scanUser.
const userColumns = `u.id, u.email, u.hashed_password, u.full_name, u.is_active, u.is_superuser,
	u.location, u.graduation_year, u.linkedin_url, u.personal_website, u.current_company,
	u.role_title, u.profile_image, u.open_to_coffee_chats, u.open_to_mentorship,
	u.available_for_referrals, u.bio, u.majors, u.is_alumni, u.alumni_status,
	u.profile_completed, u.profile_visible, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var majors []string
	err := row.Scan(
		&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.IsActive, &u.IsSuperuser,
		&u.Location, &u.GraduationYear, &u.LinkedInURL, &u.PersonalWebsite, &u.CurrentCompany,
		&u.CurrentRole, &u.ProfileImage, &u.OpenToCoffeeChats, &u.OpenToMentorship,
		&u.AvailableForReferrals, &u.Bio, pq.Array(&majors), &u.IsAlumni, &u.AlumniStatus,
		&u.ProfileCompleted, &u.ProfileVisible, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Majors = nonNilStrings(majors)
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	defer rows.Close()
	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// profileColumns is the public projection read by scanProfile.
const profileColumns = `u.id, u.email, u.full_name, u.location, u.graduation_year, u.linkedin_url,
	u.personal_website, u.current_company, u.role_title, u.profile_image,
	u.open_to_coffee_chats, u.open_to_mentorship, u.available_for_referrals,
	u.bio, u.majors, u.is_alumni`

func profileScanTargets(p *domain.PublicProfile, majors *[]string) []interface{} {
	return []interface{}{
		&p.ID, &p.Email, &p.FullName, &p.Location, &p.GraduationYear, &p.LinkedInURL,
		&p.PersonalWebsite, &p.CurrentCompany, &p.CurrentRole, &p.ProfileImage,
		&p.OpenToCoffeeChats, &p.OpenToMentorship, &p.AvailableForReferrals,
		&p.Bio, pq.Array(majors), &p.IsAlumni,
	}
}

func scanProfile(row pgx.Row) (*domain.PublicProfile, error) {
	var p domain.PublicProfile
	var majors []string
	if err := row.Scan(profileScanTargets(&p, &majors)...); err != nil {
		return nil, err
	}
	p.Majors = nonNilStrings(majors)
	return &p, nil
}

func collectProfiles(rows pgx.Rows) ([]domain.PublicProfile, error) {
	defer rows.Close()
	profiles := []domain.PublicProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
