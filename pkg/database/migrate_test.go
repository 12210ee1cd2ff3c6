package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreOrderedAndIdempotent(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.True(t, strings.HasPrefix(names[0], "001_"))

	for _, name := range names {
		body, err := migrationFiles.ReadFile("migrations/" + name)
		require.NoError(t, err)
		for _, line := range strings.Split(string(body), "\n") {
			trimmed := strings.ToUpper(strings.TrimSpace(line))
			if strings.HasPrefix(trimmed, "CREATE TABLE") {
				assert.Contains(t, trimmed, "IF NOT EXISTS", "%s: %s", name, line)
			}
			if strings.HasPrefix(trimmed, "CREATE INDEX") || strings.HasPrefix(trimmed, "CREATE UNIQUE INDEX") {
				assert.Contains(t, trimmed, "IF NOT EXISTS", "%s: %s", name, line)
			}
		}
	}
}
