package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"alumni-network-backend/config"
	"alumni-network-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	addr string
	to   []string
	msg  string
}

func newTestService(c *captured, sendErr error) *EmailService {
	s := NewEmailService(&config.Config{
		EmailsEnabled: true,
		SMTPHost:      "smtp.example.com",
		SMTPPort:      "587",
		SMTPFromEmail: "noreply@example.com",
		FrontendURL:   "https://alumni.example.com",
	})
	s.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		c.addr = addr
		c.to = to
		c.msg = string(msg)
		return sendErr
	}
	return s
}

func TestNotifyConnectionRequest(t *testing.T) {
	var c captured
	s := newTestService(&c, nil)

	err := s.NotifyConnectionRequest(context.Background(), "bob@example.com", domain.ConnectionRequestNotice{
		RequesterName: "Alice\r\nBcc: evil@example.com",
		Message:       "<b>hi</b>",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", c.addr)
	assert.Equal(t, []string{"bob@example.com"}, c.to)
	assert.Contains(t, c.msg, "Subject: Alice  Bcc: evil@example.com wants to connect\r\n")
	assert.Contains(t, c.msg, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, c.msg, "https://alumni.example.com/connections")
}

func TestNotifyConnectionAccepted(t *testing.T) {
	var c captured
	s := newTestService(&c, nil)

	err := s.NotifyConnectionAccepted(context.Background(), "alice@example.com", domain.ConnectionAcceptedNotice{
		AccepterName: "Bob",
		ContactEmail: "bob@work.com",
		LinkedInURL:  "https://linkedin.com/in/bob",
	})
	require.NoError(t, err)
	assert.Contains(t, c.msg, "mailto:bob@work.com")
	assert.Contains(t, c.msg, "https://linkedin.com/in/bob")
}

func TestNotifyDisabledOrFailing(t *testing.T) {
	s := NewEmailService(&config.Config{})
	assert.False(t, s.IsConfigured())
	assert.NoError(t, s.NotifyConnectionRequest(context.Background(), "x@y.z", domain.ConnectionRequestNotice{}))

	var c captured
	failing := newTestService(&c, errors.New("421 try later"))
	err := failing.NotifyConnectionAccepted(context.Background(), "x@y.z", domain.ConnectionAcceptedNotice{})
	assert.ErrorContains(t, err, "421 try later")
}
