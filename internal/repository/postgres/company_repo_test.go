package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeCountsSQL_ActiveUsersOnly(t *testing.T) {
	join := employeeCountsSQL[strings.Index(employeeCountsSQL, "LEFT JOIN"):strings.Index(employeeCountsSQL, "GROUP BY")]

	assert.Contains(t, join, "u.current_company = c.name")
	assert.Contains(t, join, "u.is_active = TRUE")
	assert.NotContains(t, employeeCountsSQL, "WHERE", "filtering in WHERE would drop companies with no employees")
}
