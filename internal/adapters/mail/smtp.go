package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
)

// SMTPMailer delivers transactional mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

var _ portssvc.MailSender = (*SMTPMailer)(nil)

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

func (m *SMTPMailer) SendResetCode(ctx context.Context, recipient, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", "Your password reset code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your password reset code is: %s\n\nThe code expires in 30 minutes. If you did not request a reset, you can ignore this mail.",
		code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}
