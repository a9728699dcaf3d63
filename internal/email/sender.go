package email

import (
	"crypto/tls"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPSender delivers mail over SMTP using gomail.
type SMTPSender struct {
	config Config
	dialer *gomail.Dialer
}

func NewSMTPSender(config Config) (*SMTPSender, error) {
	if config.Host == "" || config.FromEmail == "" {
		return nil, fmt.Errorf("invalid email config: host and from address are required")
	}

	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	}

	return &SMTPSender{
		config: config,
		dialer: dialer,
	}, nil
}

// Send delivers the message. Connections are dialed per send; the volume here
// does not justify a pooled client.
func (s *SMTPSender) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPSender) SendVerification(to, verificationURL string) error {
	body, html, err := renderActionTemplate(verificationTemplate, actionData{
		ActionURL:  verificationURL,
		ActionText: "Verify Email",
	})
	if err != nil {
		return err
	}

	return s.Send(&Email{
		To:       []string{to},
		Subject:  "Verify your email address",
		Body:     body,
		HTMLBody: html,
	})
}

func (s *SMTPSender) SendPasswordReset(to, resetURL string) error {
	body, html, err := renderActionTemplate(passwordResetTemplate, actionData{
		ActionURL:  resetURL,
		ActionText: "Reset Password",
	})
	if err != nil {
		return err
	}

	return s.Send(&Email{
		To:       []string{to},
		Subject:  "Reset Password Token. (Only valid for 10 minutes)",
		Body:     body,
		HTMLBody: html,
	})
}
