package domain

import (
	"context"
	"strings"
	"time"
)

type AlumniStatus string

const (
	AlumniStatusUnreviewed AlumniStatus = "unreviewed"
	AlumniStatusApproved   AlumniStatus = "approved"
	AlumniStatusRejected   AlumniStatus = "rejected"
)

type User struct {
	ID                    int64        `json:"id"`
	Email                 string       `json:"email"`
	HashedPassword        string       `json:"-"`
	FullName              *string      `json:"full_name"`
	IsActive              bool         `json:"is_active"`
	IsSuperuser           bool         `json:"is_superuser"`
	Location              *string      `json:"location"`
	GraduationYear        *int         `json:"graduation_year"`
	LinkedInURL           *string      `json:"linkedin_url"`
	PersonalWebsite       *string      `json:"personal_website"`
	CurrentCompany        *string      `json:"current_company"`
	CurrentRole           *string      `json:"current_role"`
	ProfileImage          *string      `json:"profile_image"`
	OpenToCoffeeChats     bool         `json:"open_to_coffee_chats"`
	OpenToMentorship      bool         `json:"open_to_mentorship"`
	AvailableForReferrals bool         `json:"available_for_referrals"`
	Bio                   *string      `json:"bio"`
	Majors                []string     `json:"majors"`
	IsAlumni              bool         `json:"is_alumni"`
	AlumniStatus          AlumniStatus `json:"alumni_status"`
	ProfileCompleted      bool         `json:"profile_completed"`
	ProfileVisible        bool         `json:"profile_visible"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// Role maps the superuser flag onto the context role value.
func (u *User) Role() string {
	if u.IsSuperuser {
		return RoleAdmin
	}
	return RoleUser
}

// DisplayName falls back to the email when no name is set.
func (u *User) DisplayName() string {
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		return *u.FullName
	}
	return u.Email
}

// RefreshProfileCompleted recomputes the completion flag: a non-empty name and
// a graduation year.
func (u *User) RefreshProfileCompleted() {
	u.ProfileCompleted = u.FullName != nil && strings.TrimSpace(*u.FullName) != "" && u.GraduationYear != nil
}

// PublicProfile is what other members see in the directory and list views.
type PublicProfile struct {
	ID                    int64    `json:"id"`
	Email                 string   `json:"email"`
	FullName              *string  `json:"full_name"`
	Location              *string  `json:"location"`
	GraduationYear        *int     `json:"graduation_year"`
	LinkedInURL           *string  `json:"linkedin_url"`
	PersonalWebsite       *string  `json:"personal_website"`
	CurrentCompany        *string  `json:"current_company"`
	CurrentRole           *string  `json:"current_role"`
	ProfileImage          *string  `json:"profile_image"`
	OpenToCoffeeChats     bool     `json:"open_to_coffee_chats"`
	OpenToMentorship      bool     `json:"open_to_mentorship"`
	AvailableForReferrals bool     `json:"available_for_referrals"`
	Bio                   *string  `json:"bio"`
	Majors                []string `json:"majors"`
	IsAlumni              bool     `json:"is_alumni"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:                    u.ID,
		Email:                 u.Email,
		FullName:              u.FullName,
		Location:              u.Location,
		GraduationYear:        u.GraduationYear,
		LinkedInURL:           u.LinkedInURL,
		PersonalWebsite:       u.PersonalWebsite,
		CurrentCompany:        u.CurrentCompany,
		CurrentRole:           u.CurrentRole,
		ProfileImage:          u.ProfileImage,
		OpenToCoffeeChats:     u.OpenToCoffeeChats,
		OpenToMentorship:      u.OpenToMentorship,
		AvailableForReferrals: u.AvailableForReferrals,
		Bio:                   u.Bio,
		Majors:                u.Majors,
		IsAlumni:              u.IsAlumni,
	}
}

// UpdateProfileRequest is a partial update: nil fields are left untouched.
// is_alumni, is_superuser and alumni_status are deliberately absent.
type UpdateProfileRequest struct {
	Email                 *string  `json:"email" binding:"omitempty,email,max=255"`
	FullName              *string  `json:"full_name" binding:"omitempty,max=255,valid_name,no_emoji"`
	Location              *string  `json:"location" binding:"omitempty,max=255"`
	GraduationYear        *int     `json:"graduation_year" binding:"omitempty,graduation_year"`
	LinkedInURL           *string  `json:"linkedin_url" binding:"omitempty,http_url"`
	PersonalWebsite       *string  `json:"personal_website" binding:"omitempty,http_url"`
	CurrentCompany        *string  `json:"current_company" binding:"omitempty,max=255"`
	CurrentRole           *string  `json:"current_role" binding:"omitempty,max=255"`
	OpenToCoffeeChats     *bool    `json:"open_to_coffee_chats"`
	OpenToMentorship      *bool    `json:"open_to_mentorship"`
	AvailableForReferrals *bool    `json:"available_for_referrals"`
	Bio                   *string  `json:"bio" binding:"omitempty,max=2000"`
	Majors                []string `json:"majors" binding:"omitempty,max=5,dive,min=1,max=100"`
	ProfileVisible        *bool    `json:"profile_visible"`
}

// Apply copies the set fields onto u. Empty strings clear optional text fields.
func (r UpdateProfileRequest) Apply(u *User) {
	if r.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	setText(&u.FullName, r.FullName)
	setText(&u.Location, r.Location)
	setText(&u.LinkedInURL, r.LinkedInURL)
	setText(&u.PersonalWebsite, r.PersonalWebsite)
	setText(&u.CurrentCompany, r.CurrentCompany)
	setText(&u.CurrentRole, r.CurrentRole)
	setText(&u.Bio, r.Bio)
	if r.GraduationYear != nil {
		u.GraduationYear = r.GraduationYear
	}
	if r.OpenToCoffeeChats != nil {
		u.OpenToCoffeeChats = *r.OpenToCoffeeChats
	}
	if r.OpenToMentorship != nil {
		u.OpenToMentorship = *r.OpenToMentorship
	}
	if r.AvailableForReferrals != nil {
		u.AvailableForReferrals = *r.AvailableForReferrals
	}
	if r.Majors != nil {
		u.Majors = r.Majors
	}
	if r.ProfileVisible != nil {
		u.ProfileVisible = *r.ProfileVisible
	}
	u.RefreshProfileCompleted()
}

func setText(dst **string, src *string) {
	if src == nil {
		return
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		*dst = nil
		return
	}
	*dst = &v
}

type UserRepository interface {
	// Create inserts the user and registers its email as the preferred address.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateProfileImage(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
}

type UserUsecase interface {
	GetMe(ctx context.Context) (*User, error)
	UpdateMe(ctx context.Context, req UpdateProfileRequest) (*User, error)
	GetProfile(ctx context.Context, id int64) (*PublicProfile, error)
	UploadProfileImage(ctx context.Context, filename string, data []byte) (*User, error)
	DeleteMe(ctx context.Context) error
}
