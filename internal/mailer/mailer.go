// Package mailer sends the password-reset one-time codes.
package mailer

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

// A Mailer delivers password-reset codes to users.
type Mailer interface {
	// SendOTP sends the given 6-digit code to the recipient.
	SendOTP(to, code string) error
}

// SMTPConfig holds the outbound-mail credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	cfg SMTPConfig
}

// NewSMTP returns a Mailer sending through the given SMTP server.
func NewSMTP(cfg SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendOTP(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Code")
	msg.SetBody("text/plain", fmt.Sprintf("Your 6-digit code is: %s\nValid for 10 minutes.", code))
	msg.AddAlternative("text/html", fmt.Sprintf("<h2>Password Reset</h2><p>Your code: <strong>%s</strong></p><p>Valid for 10 minutes.</p>", code))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return errors.Wrap(d.DialAndSend(msg), "could not send reset code")
}

type logMailer struct{}

// NewLog returns a Mailer that only logs the code. Used when no SMTP server
// is configured, and in tests.
func NewLog() Mailer {
	return logMailer{}
}

func (logMailer) SendOTP(to, code string) error {
	logrus.WithField("to", to).Infof("password reset code: %s", code)
	return nil
}
