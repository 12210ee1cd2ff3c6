package domain

import (
	"context"
	"strings"
)

// AlumniFilter holds the directory criteria. Pointer fields are tri-state:
// nil means the criterion is not applied.
type AlumniFilter struct {
	Search                string `form:"search"`
	Location              string `form:"location"`
	Company               string `form:"company"`
	GraduationYear        *int   `form:"graduation_year"`
	OpenToCoffeeChats     *bool  `form:"open_to_coffee_chats"`
	OpenToMentorship      *bool  `form:"open_to_mentorship"`
	AvailableForReferrals *bool  `form:"available_for_referrals"`
	IsAlumni              *bool  `form:"is_alumni"`
	Pagination
}

func (f *AlumniFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	f.Location = strings.TrimSpace(f.Location)
	f.Company = strings.TrimSpace(f.Company)
	f.Pagination.Normalize()
}

type DirectoryRepository interface {
	// Search returns visible, active profiles matching f and the total match count.
	Search(ctx context.Context, f AlumniFilter) ([]PublicProfile, int64, error)
	GetVisible(ctx context.Context, id int64) (*PublicProfile, error)
}

type DirectoryUsecase interface {
	Search(ctx context.Context, f AlumniFilter) (*PaginatedResult[PublicProfile], error)
	Get(ctx context.Context, id int64) (*PublicProfile, error)
}
