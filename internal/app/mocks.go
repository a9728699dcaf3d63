package app

import (
	"tourhub_backend/internal/email"
	"tourhub_backend/internal/logger"
)

// LogEmailProvider logs outgoing mail instead of delivering it. Used when
// SMTP is not configured so signup and password reset stay usable locally.
type LogEmailProvider struct{}

func NewLogEmailProvider() *LogEmailProvider {
	return &LogEmailProvider{}
}

func (p *LogEmailProvider) Send(e *email.Email) error {
	logger.Info("email (log-only)", "to", e.To, "subject", e.Subject)
	return nil
}

func (p *LogEmailProvider) SendVerification(to, verificationURL string) error {
	logger.Info("verification email (log-only)", "to", to, "url", verificationURL)
	return nil
}

func (p *LogEmailProvider) SendPasswordReset(to, resetURL string) error {
	logger.Info("password reset email (log-only)", "to", to, "url", resetURL)
	return nil
}
