package mailer

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

var ErrNoRecipients = errors.New("no recipients specified")

// Config holds SMTP configuration for sending emails. An empty Host disables mail.
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"     envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Enabled reports whether an SMTP host was configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}

// Validate checks that an enabled configuration is complete.
func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}

// Mailer represents an email sender.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

// Email represents an email message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// NewMailer creates a new Mailer instance with the given configuration.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send sends a single email.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}

	return m.dialer.DialAndSend(m.newMessage(email))
}

func (m *Mailer) newMessage(email Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	return msg
}
