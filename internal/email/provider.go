package email

// Email is a single outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider abstracts email delivery so services can take a mock in tests and
// in environments without SMTP configured.
type Provider interface {
	// Send delivers a prepared message.
	Send(email *Email) error

	// SendVerification delivers the email-verification link.
	SendVerification(to, verificationURL string) error

	// SendPasswordReset delivers the password-reset link.
	SendPasswordReset(to, resetURL string) error
}

// Config holds SMTP settings, filled from the application config.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}
