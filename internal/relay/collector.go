package relay

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"torreport/internal/appconfig"
	"torreport/internal/logger"
	"torreport/internal/torctl"

	"github.com/rs/zerolog"
)

// Controller is the narrow control-channel query surface the collector
// consumes. *torctl.Client satisfies it; tests substitute fakes.
type Controller interface {
	Authenticate() error
	GetInfo(key, def string) string
	GetConf(key, def string) string
	NetworkStatus(fingerprint string) (*torctl.NetworkStatus, error)
	Close() error
}

// DialFunc opens a control session.
type DialFunc func() (Controller, error)

// expectedFlags are the consensus flags a healthy relay should carry.
var expectedFlags = []string{"Running", "Valid"}

// Collector gathers relay metrics into a Report. It never returns an
// error: every failure becomes a Report diagnostic.
type Collector struct {
	cfg      appconfig.Config
	dial     DialFunc
	hostname func() (string, error)
}

func NewCollector(cfg appconfig.Config, dial DialFunc) *Collector {
	return &Collector{
		cfg:      cfg,
		dial:     dial,
		hostname: os.Hostname,
	}
}

// Collect runs one collection pass. Each query is individually defaulted
// so one failed lookup cannot abort the rest of the record; only a failed
// connect/authenticate halts collection.
func (c *Collector) Collect() *Report {
	host, err := c.hostname()
	if err != nil {
		host = ""
	}
	rep := NewReport(host)
	log := logger.Collect.With().Str("run_id", rep.RunID).Logger()

	ctrl, err := c.dial()
	if err != nil {
		rep.ConnectionFailed = true
		rep.Errorf("Failed to connect to Tor control port: %v", err)
		log.Error().Err(err).Msg("control port unreachable")
		return rep
	}
	defer ctrl.Close()

	if err := ctrl.Authenticate(); err != nil {
		rep.ConnectionFailed = true
		rep.Errorf("Failed to connect to Tor control port: %v", err)
		log.Error().Err(err).Msg("control port authentication failed")
		return rep
	}

	// Basic info
	rep.Version = ctrl.GetInfo("version", "")
	if v := ctrl.GetInfo("uptime", ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			rep.UptimeSeconds = n
			rep.UptimeHuman = FormatDuration(n)
		}
	}

	// Traffic counters
	if v := ctrl.GetInfo("traffic/read", ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			rep.BytesRead = n
			rep.ReadHuman = FormatBytes(float64(n))
		}
	}
	if v := ctrl.GetInfo("traffic/written", ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			rep.BytesWritten = n
			rep.WrittenHuman = FormatBytes(float64(n))
		}
	}

	// Relay identity
	rep.Fingerprint = ctrl.GetInfo("fingerprint", "")
	rep.Nickname = ctrl.GetConf("Nickname", c.cfg.Report.Nickname)
	rep.Address = ctrl.GetInfo("address", "unknown")
	rep.ORPort = ctrl.GetConf("ORPort", "9001")

	// Circuit status
	if v := ctrl.GetInfo("status/circuit-established", ""); v != "" {
		established := v == "1"
		rep.CircuitsEstablished = &established
	}

	// OR connections to other relays, one status line each
	rep.ConnectionCount = countLines(ctrl.GetInfo("orconn-status", ""))
	c.checkConnectionThresholds(rep)

	c.collectNetworkStatus(ctrl, rep, log)
	c.collectAccounting(ctrl, rep)

	log.Info().
		Int("connections", rep.ConnectionCount).
		Int("warnings", len(rep.Warnings)).
		Int("errors", len(rep.Errors)).
		Msg("collection finished")

	return rep
}

// checkConnectionThresholds emits at most one warning: the critical tier
// suppresses the warning tier.
func (c *Collector) checkConnectionThresholds(rep *Report) {
	switch {
	case rep.ConnectionCount < c.cfg.Report.MinConnectionsCrit:
		rep.Warnf("⚠️  CRITICAL: Only %d connections (threshold: %d)",
			rep.ConnectionCount, c.cfg.Report.MinConnectionsCrit)
	case rep.ConnectionCount < c.cfg.Report.MinConnectionsWarn:
		rep.Warnf("⚠️  WARNING: Only %d connections (threshold: %d)",
			rep.ConnectionCount, c.cfg.Report.MinConnectionsWarn)
	}
}

// collectNetworkStatus looks up this relay's consensus entry. A failure
// leaves a placeholder flag list and an error entry but does not abort.
func (c *Collector) collectNetworkStatus(ctrl Controller, rep *Report, log zerolog.Logger) {
	ns, err := ctrl.NetworkStatus(rep.Fingerprint)
	if err != nil {
		rep.Flags = []string{"(unable to retrieve)"}
		rep.Errorf("Could not get network status: %v", err)
		log.Warn().Err(err).Msg("consensus lookup failed")
		return
	}

	rep.Flags = ns.Flags
	if rep.Flags == nil {
		rep.Flags = []string{}
	}
	rep.FlagsKnown = true
	rep.Bandwidth = ns.Bandwidth
	rep.Published = ns.Published
	log.Debug().
		Strs("flags", rep.Flags).
		Int64("bandwidth", rep.Bandwidth).
		Time("published", rep.Published).
		Msg("consensus entry")

	if missing := missingFlags(rep.Flags); len(missing) > 0 {
		rep.Warnf("⚠️  Missing expected flags: %s", strings.Join(missing, ", "))
	}
}

// collectAccounting attaches the accounting sub-record only when the
// feature is enabled and both values come back. Failures here are
// deliberately silent.
func (c *Collector) collectAccounting(ctrl Controller, rep *Report) {
	if ctrl.GetInfo("accounting/enabled", "0") != "1" {
		return
	}
	bytesLeft := ctrl.GetInfo("accounting/bytes-left", "")
	intervalEnd := ctrl.GetInfo("accounting/interval-end", "")
	if bytesLeft == "" || intervalEnd == "" {
		return
	}
	rep.Accounting = &Accounting{
		BytesLeft:   bytesLeft,
		IntervalEnd: intervalEnd,
	}
}

// missingFlags returns the expected flags absent from current, sorted.
func missingFlags(current []string) []string {
	have := make(map[string]bool, len(current))
	for _, f := range current {
		have[f] = true
	}
	var missing []string
	for _, f := range expectedFlags {
		if !have[f] {
			missing = append(missing, f)
		}
	}
	sort.Strings(missing)
	return missing
}

// countLines counts non-empty lines.
func countLines(s string) int {
	count := 0
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line != "" {
			count++
		}
	}
	return count
}
