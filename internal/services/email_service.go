package services

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// EmailService — единственный канал уведомлений. Отправка синхронная:
// ошибку отдаём вызывающему, он решает, валит ли она операцию.
type EmailService interface {
	SendWelcomeEmail(email string) error
	SendVerifyOTPEmail(email, otp string) error
	SendPasswordResetEmail(email, otp string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) send(to, subject, contentType, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody(contentType, body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendWelcomeEmail(email string) error {
	body := fmt.Sprintf("Welcome! Your account has been created with email id: %s", email)
	if err := s.send(email, "Welcome to New World", "text/plain", body); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendVerifyOTPEmail(email, otp string) error {
	body := renderTemplate(emailVerifyTemplate, otp, email)
	if err := s.send(email, "Account Verification OTP", "text/html", body); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordResetEmail(email, otp string) error {
	body := renderTemplate(passwordResetTemplate, otp, email)
	if err := s.send(email, "Password Reset OTP", "text/html", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func renderTemplate(tpl, otp, email string) string {
	return strings.NewReplacer("{{otp}}", otp, "{{email}}", email).Replace(tpl)
}
