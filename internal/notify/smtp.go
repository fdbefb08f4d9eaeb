package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// SMTPNotifier delivers rendered templates over plain SMTP. Transient
// delivery failures are retried with bounded exponential backoff before the
// error reaches the caller.
type SMTPNotifier struct {
	Addr     string // host:port
	Username string
	Password string
	From     string
	Host     string // hostname only, for PlainAuth

	maxRetries uint64
	log        *logrus.Logger
}

// NewSMTPNotifier constructs a notifier for the given transport credentials.
func NewSMTPNotifier(host, port, username, password, from string, log *logrus.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		Addr:       host + ":" + port,
		Host:       host,
		Username:   username,
		Password:   password,
		From:       from,
		maxRetries: 3,
		log:        log,
	}
}

// Send renders the template and delivers it, retrying transient failures.
func (n *SMTPNotifier) Send(ctx context.Context, to, tmpl string, data map[string]any) error {
	subject, body, err := Render(tmpl, data)
	if err != nil {
		return err
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", n.From, to, subject, body))

	var auth smtp.Auth
	if n.Username != "" {
		auth = smtp.PlainAuth("", n.Username, n.Password, n.Host)
	}

	backoff := retry.WithMaxRetries(n.maxRetries, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := smtp.SendMail(n.Addr, auth, n.From, []string{to}, msg); err != nil {
			n.log.WithError(err).WithField("to", to).Debug("smtp send attempt failed")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
