// Package mailer wraps the SMTP transport used for OTP codes and
// verification links.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New returns nil when no SMTP host is configured; callers treat a nil
// Mailer as "email disabled" and log instead of sending.
func New(host string, port int, username, password, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) SendOTP(to, code string, minutes int) error {
	body := fmt.Sprintf("<p>Your one-time code is <b>%s</b>.</p><p>It expires in %d minutes.</p>", code, minutes)
	return m.Send(to, "Your verification code", body)
}

func (m *Mailer) SendVerificationLink(to, link string) error {
	body := fmt.Sprintf("<p>Verify your account by clicking the link below.</p><p><a href=%q>%s</a></p><p>The link expires in 24 hours.</p>", link, link)
	return m.Send(to, "Verify your account", body)
}
