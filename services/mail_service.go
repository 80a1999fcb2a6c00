// services/mail_service.go
package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Vignesh3161/righttouch-backend/config"
)

// MailService sends transactional email through the configured SMTP relay.
type MailService struct {
	cfg config.SMTPConfig
}

func NewMailService(cfg config.SMTPConfig) *MailService {
	return &MailService{cfg: cfg}
}

// Send delivers a plain-text message.
func (m *MailService) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.From, "Service App"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOTP mails a freshly issued code with the fixed signup template.
func (m *MailService) SendOTP(to, code string) error {
	return m.Send(to, "Your OTP Code", "Your OTP is: "+code)
}

// SendResetOTP mails a password-reset code.
func (m *MailService) SendResetOTP(to, code string) error {
	return m.Send(to, "Password Reset OTP", "Your password reset OTP is: "+code)
}
