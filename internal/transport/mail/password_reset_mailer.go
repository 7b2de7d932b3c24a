package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// PasswordResetMailer delivers reset secrets over SMTP. The secret
// appears only in the message body; it is never logged here.
type PasswordResetMailer struct {
	dialer          *gomail.Dialer
	from            string
	frontendBaseURL string
}

func NewPasswordResetMailer(host string, port int, username, password, from, frontendBaseURL string) *PasswordResetMailer {
	return &PasswordResetMailer{
		dialer:          gomail.NewDialer(host, port, username, password),
		from:            strings.TrimSpace(from),
		frontendBaseURL: strings.TrimRight(strings.TrimSpace(frontendBaseURL), "/"),
	}
}

func (m *PasswordResetMailer) SendPasswordReset(ctx context.Context, email, secret string) error {
	if m == nil || m.dialer == nil {
		return errors.New("mailer not configured")
	}
	if m.from == "" {
		return errors.New("mailer missing sender address")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your Tektai account.</p>
		<p>Use the following token to reset your password: <strong>%s</strong></p>`, secret)
	if m.frontendBaseURL != "" {
		body += fmt.Sprintf(`
		<p>Or follow this link: <a href="%[1]s/reset-password?token=%[2]s">%[1]s/reset-password</a></p>`, m.frontendBaseURL, secret)
	}
	body += `
		<p>The token expires shortly. If you did not request this change, you can ignore this email.</p>`

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Password reset request")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}
