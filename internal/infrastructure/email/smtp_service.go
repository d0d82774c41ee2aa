package email

import (
	"context"
	"fmt"
	"net/smtp"
)

// ConfirmationEmailData carries everything needed to deliver a signup
// confirmation code.
type ConfirmationEmailData struct {
	Email    string
	Username string
	Code     string
}

// EmailService is the outbound mail boundary. Sending is synchronous:
// a delivery failure must abort the signup response, never be swallowed.
type EmailService interface {
	SendConfirmationEmail(ctx context.Context, data ConfirmationEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	from     string
}

// NewSMTPEmailService builds an EmailService over plain SMTP. In
// development this is pointed at a local catcher (mailhog, mailpit).
func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		from:     from,
	}
}

func (s *smtpEmailService) SendConfirmationEmail(ctx context.Context, data ConfirmationEmailData) error {
	subject := "ReviewHub account confirmation code"
	body := fmt.Sprintf(`Hello %s,

Your confirmation code is:

    %s

Exchange it at POST /api/v1/auth/token to activate your account.

If you did not sign up for ReviewHub, please ignore this message.`,
		data.Username, data.Code)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, data.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.from, []string{data.Email}, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}
