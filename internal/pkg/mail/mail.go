package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/xyz-asif/gocart/internal/config"
)

// Sender delivers transactional mail over SMTP. Delivery failures surface
// as their own error, distinct from the auth-flow errors around them.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	client string
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass),
		from:   cfg.EmailUser,
		client: cfg.ClientURL,
	}
}

// Send delivers a single HTML mail.
func (s *Sender) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("Gocart <%s>", s.from))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// SendActivation mails the account activation link embedding the
// registration token.
func (s *Sender) SendActivation(to, verifyToken string) error {
	link := fmt.Sprintf("%s/activate?token=%s", s.client, verifyToken)
	html := fmt.Sprintf(`
		<h2>Welcome to Gocart</h2>
		<p>Click the link below to verify your email and create your account.</p>
		<p><a href=%q>Activate account</a></p>
		<p>The link expires shortly, register again if it does.</p>`, link)

	return s.Send(to, "Account Activation Link", html)
}

// SendPasswordReset mails a password reset link embedding the reset token.
func (s *Sender) SendPasswordReset(to, resetToken string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.client, resetToken)
	html := fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Click the link below to reset your password.</p>
		<p><a href=%q>Reset password</a></p>
		<p>If you didn't ask for this, ignore this mail.</p>`, link)

	return s.Send(to, "Password Reset Link", html)
}
