package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Mailer dispatches transactional mail. Implementations must be safe
// for concurrent use; every send builds a fresh message value.
type Mailer interface {
	SendOTP(ctx context.Context, name, email string, otp int) error
	SendWelcome(ctx context.Context, name, email string) error
}

// Noop discards all mail. Used when dispatch is disabled by config.
type Noop struct{}

func (Noop) SendOTP(context.Context, string, string, int) error { return nil }
func (Noop) SendWelcome(context.Context, string, string) error  { return nil }

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends mail through an authenticated SMTP relay.
type SMTP struct {
	client *gomail.Client
	from   string
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to build client: %w", err)
	}
	return &SMTP{client: client, from: cfg.From}, nil
}

func (s *SMTP) SendOTP(ctx context.Context, name, email string, otp int) error {
	body := fmt.Sprintf(`Hi %s,

Your one-time password (OTP) is %d. Please enter this code to complete your authentication process.

If you did not request this code, please ignore this message.

Best regards,
The Certs365 Team`, name, otp)

	return s.send(ctx, email, "Your Authentication OTP", body)
}

func (s *SMTP) SendWelcome(ctx context.Context, name, email string) error {
	body := fmt.Sprintf(`Hi %s,

Welcome to the Certs365 Portal, your registration is now complete.

Your account details will be reviewed and approved by our admin team. Once your account has been approved, you will receive a notification with further instructions.

Thank you for joining us.

Best regards,
The Certs365 Team`, name)

	return s.send(ctx, email, "Welcome to Certs365", body)
}

func (s *SMTP) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("mail: invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail: invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send failed: %w", err)
	}
	return nil
}
