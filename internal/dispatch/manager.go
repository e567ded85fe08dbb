// Package dispatch delivers the rendered report. Delivery fan-out goes
// through nikoksr/notify; the only configured service is SMTP mail.
package dispatch

import (
	"context"
	"fmt"

	"torreport/internal/appconfig"
	"torreport/internal/logger"
	"torreport/internal/relay"

	nfy "github.com/nikoksr/notify"
)

// Manager wraps nikoksr/notify.Notify with the configured mail service.
type Manager struct {
	cfg      appconfig.Config
	notifier *nfy.Notify
}

func NewManager(cfg appconfig.Config) *Manager {
	n := nfy.New()
	n.UseServices(newMailService(cfg))
	return &Manager{cfg: cfg, notifier: n}
}

// Subject derives the subject line from the report's diagnostic lists:
// warnings outrank errors, errors outrank all-clear.
func (m *Manager) Subject(rep *relay.Report) string {
	indicator := "✅"
	switch {
	case len(rep.Warnings) > 0:
		indicator = "⚠️"
	case len(rep.Errors) > 0:
		indicator = "❌"
	}
	nickname := rep.Nickname
	if nickname == "" {
		nickname = m.cfg.Report.Nickname
	}
	return fmt.Sprintf("%s Tor Relay Report: %s", indicator, nickname)
}

// Send attempts one delivery. Failures are logged and returned so the
// caller can fall back to stdout; they never propagate as panics.
func (m *Manager) Send(ctx context.Context, subject, body string) error {
	if err := m.notifier.Send(ctx, subject, body); err != nil {
		logger.Dispatch.Warn().Err(err).Str("to", m.cfg.Report.To).Msg("email delivery failed")
		return err
	}
	logger.Dispatch.Info().Str("to", m.cfg.Report.To).Msg("report delivered")
	return nil
}
