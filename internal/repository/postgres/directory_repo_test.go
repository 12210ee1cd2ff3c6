package postgres

import (
	"testing"

	"alumni-network-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildDirectoryFilter_VisibleOnlyByDefault(t *testing.T) {
	where, args := buildDirectoryFilter(domain.AlumniFilter{})

	assert.Equal(t, "WHERE u.profile_visible = TRUE AND u.is_active = TRUE", where)
	assert.Empty(t, args)
}

func TestBuildDirectoryFilter_AllCriteria(t *testing.T) {
	year := 2020
	yes, no := true, false
	where, args := buildDirectoryFilter(domain.AlumniFilter{
		Search:            "50%_off",
		Location:          "Seattle",
		Company:           "Acme",
		GraduationYear:    &year,
		OpenToCoffeeChats: &yes,
		IsAlumni:          &no,
	})

	assert.Contains(t, where, "u.email ILIKE $1")
	assert.Contains(t, where, "COALESCE(u.location, '') ILIKE $2")
	assert.Contains(t, where, "COALESCE(u.current_company, '') ILIKE $3")
	assert.Contains(t, where, "u.graduation_year = $4")
	assert.Contains(t, where, "u.open_to_coffee_chats = $5")
	assert.Contains(t, where, "u.is_alumni = $6")
	assert.NotContains(t, where, "open_to_mentorship")

	assert.Equal(t, []interface{}{`%50\%\_off%`, "%Seattle%", "%Acme%", 2020, true, false}, args)
}

func TestContainsPattern_EscapesBackslash(t *testing.T) {
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
