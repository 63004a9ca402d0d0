package sink

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/jonwraymond/warden/run"
	"github.com/jonwraymond/warden/watch"
)

// EmailConfig configures the SMTP alert sink.
type EmailConfig struct {
	// Host is the SMTP server host. Required.
	Host string

	// Port is the SMTP server port. Default: 587.
	Port int

	// Username and Password authenticate against the server.
	// An empty Username disables authentication.
	Username string
	Password string

	// From is the sender address. Required.
	From string

	// To lists the recipients. Required.
	To []string
}

// Email sends an alert mail whenever a watcher fails its check.
type Email struct {
	config EmailConfig
}

// NewEmail creates an email alert sink.
func NewEmail(config EmailConfig) *Email {
	if config.Port == 0 {
		config.Port = 587
	}
	return &Email{config: config}
}

// AttachWatcher registers the alert callback on the Failure chain.
func (s *Email) AttachWatcher(h *run.WatcherHooks) {
	h.Failure.OnAsync(func(ctx context.Context, r watch.Result) error {
		return s.send(r)
	})
}

func (s *Email) send(r watch.Result) error {
	subject, body := s.compose(r)

	em := email.NewEmail()
	em.From = s.config.From
	em.To = append([]string{}, s.config.To...)
	em.Subject = subject
	em.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	return em.SendWithStartTLS(addr, auth, &tls.Config{ServerName: s.config.Host})
}

func (s *Email) compose(r watch.Result) (subject, body string) {
	subject = fmt.Sprintf("[FAILURE] %s", r.Outcome.Watcher)
	body = fmt.Sprintf("Watcher: %s\nReason: %s\nStarted: %s\nCompleted: %s\nDuration: %s\n",
		r.Outcome.Watcher,
		r.Outcome.Description,
		r.StartedAt.Format("2006-01-02 15:04:05 MST"),
		r.CompletedAt.Format("2006-01-02 15:04:05 MST"),
		r.Duration(),
	)
	return subject, body
}
