package commands

import (
	"context"

	"torreport/internal/appconfig"
	"torreport/internal/dispatch"
	"torreport/internal/logger"
	"torreport/internal/output"
	"torreport/internal/relay"
	"torreport/internal/render"
	"torreport/internal/torctl"
)

// RunReport runs the collect → render → dispatch pipeline once. It always
// returns 0: collection failures ride along inside the report, and a
// failed email delivery falls back to stdout so a scheduler's log still
// captures the content.
func RunReport(stdoutOnly bool) int {
	cfg, err := appconfig.Load()
	if err != nil {
		output.Printf("warning: failed to read config, using defaults: %s\n", err)
		cfg = appconfig.Default()
	}
	logger.Init(cfg.Log)
	output.SetDebug(cfg.IsDebug())
	output.Debugf("loaded config: %s\n", appconfig.ConfigPath())

	collector := relay.NewCollector(cfg, func() (relay.Controller, error) {
		client, err := torctl.Dial(cfg.Control)
		if err != nil {
			return nil, err
		}
		return client, nil
	})
	rep := collector.Collect()
	body := render.Text(rep)

	if stdoutOnly {
		output.Println(body)
		return 0
	}

	manager := dispatch.NewManager(cfg)
	if err := manager.Send(context.Background(), manager.Subject(rep), body); err != nil {
		// Fallback: print so cron captures the report anyway.
		output.Println("Email failed, dumping report:")
		output.Println(body)
		return 0
	}
	output.Printf("Report sent to %s\n", cfg.Report.To)
	return 0
}
