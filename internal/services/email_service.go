package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/config"
)

// EmailService sends the application's transactional mails. A service
// constructed from an empty SMTP config silently drops every send, so
// deployments without mail simply lose the side effect.
type EmailService struct {
	cfg config.Config
}

func NewEmailService(cfg config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) enabled() bool {
	return s.cfg.SMTPHost != ""
}

func (s *EmailService) send(to, subject, body string) error {
	if !s.enabled() {
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// SendMentionEmail notifies a user they were tagged in a comment.
func (s *EmailService) SendMentionEmail(to, author, text string) error {
	body := fmt.Sprintf("%s mentioned you in a comment:\n\n%s\n\nOpen Track-in-Train to reply.", author, text)
	return s.send(to, fmt.Sprintf("%s mentioned you", author), body)
}

// SendCredentialsEmail delivers initial login credentials to a new user.
func (s *EmailService) SendCredentialsEmail(to, userID, password string) error {
	body := fmt.Sprintf(
		"An account has been created for you.\n\nLogin: %s\nTemporary password: %s\n\nPlease change your password after first login.",
		userID, password,
	)
	return s.send(to, "Your Track-in-Train account", body)
}
