package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com/, ,https://b.example.com")
	t.Setenv("EMAILS_ENABLED", "not-a-bool")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpires)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.False(t, cfg.EmailsEnabled)
	assert.Equal(t, 5, cfg.FailedLoginMaxAttempts)
}

func TestEmailConfigured(t *testing.T) {
	cfg := &Config{EmailsEnabled: true}
	assert.False(t, cfg.EmailConfigured())

	cfg.SMTPHost = "smtp.example.com"
	assert.True(t, cfg.EmailConfigured())
}
