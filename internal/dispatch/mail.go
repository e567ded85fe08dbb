package dispatch

import (
	"context"
	"crypto/tls"
	"net"
	"net/smtp"
	"strconv"

	"torreport/internal/appconfig"

	"github.com/jordan-wright/email"
)

// mailService is a notify.Notifier that submits one plain-text message
// over SMTP. With use_tls the session upgrades via STARTTLS; otherwise
// the connection is implicit TLS (smtps).
type mailService struct {
	cfg  appconfig.SMTPConfig
	from string
	to   string

	// submit is swapped out in tests.
	submit func(msg *email.Email) error
}

func newMailService(cfg appconfig.Config) *mailService {
	s := &mailService{
		cfg:  cfg.SMTP,
		from: cfg.Report.From,
		to:   cfg.Report.To,
	}
	s.submit = s.send
	return s
}

func (s *mailService) Send(ctx context.Context, subject, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := email.NewEmail()
	msg.From = s.from
	msg.To = []string{s.to}
	msg.Subject = subject
	msg.Text = []byte(message)
	return s.submit(msg)
}

func (s *mailService) send(msg *email.Email) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	tlsCfg := &tls.Config{ServerName: s.cfg.Host}
	if s.cfg.UseTLS {
		return msg.SendWithStartTLS(addr, auth, tlsCfg)
	}
	return msg.SendWithTLS(addr, auth, tlsCfg)
}
