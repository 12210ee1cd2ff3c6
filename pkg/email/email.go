package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"alumni-network-backend/config"
	"alumni-network-backend/internal/domain"
)

// EmailService sends notification mail over SMTP
type EmailService struct {
	host        string
	port        string
	username    string
	password    string
	fromEmail   string
	frontendURL string
	enabled     bool
	send        func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates the SMTP notifier from configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		fromEmail:   cfg.SMTPFromEmail,
		frontendURL: cfg.FrontendURL,
		enabled:     cfg.EmailConfigured(),
		send:        smtp.SendMail,
	}
}

var (
	requestTemplate = template.Must(template.New("request").Parse(layout(`
            <h1>New connection request</h1>
        </div>
        <div class="content">
            <p><strong>{{.RequesterName}}</strong> would like to connect with you.</p>
            {{if .Message}}<div class="message-box">{{.Message}}</div>{{end}}
            <p><a href="{{.Link}}">Review the request</a></p>`)))

	acceptedTemplate = template.Must(template.New("accepted").Parse(layout(`
            <h1>Connection accepted</h1>
        </div>
        <div class="content">
            <p><strong>{{.AccepterName}}</strong> accepted your connection request.</p>
            {{if .ContactEmail}}<p>Email: <a href="mailto:{{.ContactEmail}}">{{.ContactEmail}}</a></p>{{end}}
            {{if .LinkedInURL}}<p>LinkedIn: <a href="{{.LinkedInURL}}">{{.LinkedInURL}}</a></p>{{end}}`)))
)

func layout(body string) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #003594; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #ffb81c; margin: 10px 0; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">` + body + `
        </div>
        <div class="footer">
            <p>You are receiving this because you have an account on the alumni network.</p>
        </div>
    </div>
</body>
</html>`
}

type requestView struct {
	domain.ConnectionRequestNotice
	Link string
}

// NotifyConnectionRequest tells the requested user about a new request
func (s *EmailService) NotifyConnectionRequest(ctx context.Context, to string, n domain.ConnectionRequestNotice) error {
	view := requestView{ConnectionRequestNotice: n, Link: s.frontendURL + "/connections"}
	return s.render(ctx, to, fmt.Sprintf("%s wants to connect", n.RequesterName), requestTemplate, view)
}

// NotifyConnectionAccepted shares the accepter's contact details with the requester
func (s *EmailService) NotifyConnectionAccepted(ctx context.Context, to string, n domain.ConnectionAcceptedNotice) error {
	return s.render(ctx, to, fmt.Sprintf("%s accepted your connection request", n.AccepterName), acceptedTemplate, n)
}

func (s *EmailService) render(ctx context.Context, to, subject string, tmpl *template.Template, data interface{}) error {
	if !s.IsConfigured() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		sanitizeHeader(subject),
		body.String(),
	))

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if emails are enabled and an SMTP host is set
func (s *EmailService) IsConfigured() bool {
	return s.enabled && s.host != ""
}

// Names come from user profiles and end up in a header line.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
