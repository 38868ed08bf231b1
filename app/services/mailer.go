package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// MailSender is what the contact form needs from a mailer.
type MailSender interface {
	SendHTMLEmail(to, subject, htmlBody string) error
}

type Mailer struct {
	config Config
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	msg := buildMessage(m.config.From, to, subject, htmlBody)

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	err := m.send(addr, auth, m.config.From, []string{to}, msg)
	if err != nil {
		log.Printf("Mailer.SendHTMLEmail: failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send html email: %w", err)
	}

	return nil
}

// buildMessage writes the headers in a fixed order; header values have
// CR and LF stripped.
func buildMessage(from, to, subject, htmlBody string) []byte {
	clean := strings.NewReplacer("\r", "", "\n", "")
	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"UTF-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", h[0], clean.Replace(h[1])))
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return []byte(msg.String())
}
