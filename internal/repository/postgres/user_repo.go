package postgres

import (
	"context"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO users (email, hashed_password, full_name, is_active, is_superuser,
	              majors, is_alumni, alumni_status, profile_completed, profile_visible)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, query,
		user.Email, user.HashedPassword, user.FullName, user.IsActive, user.IsSuperuser,
		pq.Array(nonNilStrings(user.Majors)), user.IsAlumni, user.AlumniStatus,
		user.ProfileCompleted, user.ProfileVisible,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("The user with this email already exists in the system")
		}
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO emails (email, user_id, preferred) VALUES ($1, $2, TRUE)`, user.Email, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("The user with this email already exists in the system")
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, nil
	}
	return user, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE LOWER(u.email) = LOWER($1)`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if isNoRows(err) {
		return nil, nil
	}
	return user, err
}

// Update writes the editable profile columns. A changed email also becomes the
// user's preferred address.
func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var previousEmail string
	if err := tx.QueryRow(ctx, `SELECT email FROM users WHERE id = $1 FOR UPDATE`, user.ID).Scan(&previousEmail); err != nil {
		if isNoRows(err) {
			return apperror.NotFound("User not found")
		}
		return err
	}

	query := `UPDATE users SET
	              email = $2, full_name = $3, location = $4, graduation_year = $5,
	              linkedin_url = $6, personal_website = $7, current_company = $8,
	              role_title = $9, open_to_coffee_chats = $10, open_to_mentorship = $11,
	              available_for_referrals = $12, bio = $13, majors = $14,
	              profile_completed = $15, profile_visible = $16, updated_at = NOW()
	          WHERE id = $1
	          RETURNING updated_at`
	err = tx.QueryRow(ctx, query,
		user.ID, user.Email, user.FullName, user.Location, user.GraduationYear,
		user.LinkedInURL, user.PersonalWebsite, user.CurrentCompany,
		user.CurrentRole, user.OpenToCoffeeChats, user.OpenToMentorship,
		user.AvailableForReferrals, user.Bio, pq.Array(nonNilStrings(user.Majors)),
		user.ProfileCompleted, user.ProfileVisible,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("User with this email already exists")
		}
		return err
	}

	if previousEmail != user.Email {
		if _, err := tx.Exec(ctx, `UPDATE emails SET preferred = FALSE WHERE user_id = $1 AND preferred`, user.ID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO emails (email, user_id, preferred) VALUES ($1, $2, TRUE)
		                       ON CONFLICT (email) DO UPDATE SET preferred = TRUE
		                       WHERE emails.user_id = EXCLUDED.user_id`, user.Email, user.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET hashed_password = $2, updated_at = NOW() WHERE id = $1`, id, hash)
	return err
}

func (r *userRepo) UpdateProfileImage(ctx context.Context, id int64, url string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET profile_image = $2, updated_at = NOW() WHERE id = $1`, id, url)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}
