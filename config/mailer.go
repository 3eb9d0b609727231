package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

// Mailer sends HTML mail over SMTP. Construct one with MailerFromEnv and
// inject it where mail is sent.
type Mailer struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string // e.g. "Developer Evaluation Team <no-reply@your.org>"
	SkipTLSVerify bool
}

// MailerFromEnv builds a Mailer from the SMTP_* environment variables.
func MailerFromEnv() *Mailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &Mailer{
		Host:          os.Getenv("SMTP_HOST"),
		Port:          port,
		User:          os.Getenv("SMTP_USER"),
		Pass:          os.Getenv("SMTP_PASS"),
		From:          os.Getenv("SMTP_FROM"),
		SkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}
}

// Send delivers one HTML message. STARTTLS is mandatory on the SMTP dialer;
// SkipTLSVerify is for development against self-signed servers only.
func (m *Mailer) Send(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}
	if m.Host == "" || m.From == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	d := mail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         m.Host,
		InsecureSkipVerify: m.SkipTLSVerify,
	}

	return d.DialAndSend(msg)
}
