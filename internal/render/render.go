// Package render turns a Report into the plain-text digest. It is pure:
// no I/O, deterministic for a given report.
package render

import (
	"fmt"
	"strings"
	"time"

	"torreport/internal/relay"
)

const (
	generatedLayout = "2006-01-02 15:04:05"
	restartLayout   = "01/02/2006 15:04"
	lookupURL       = "https://metrics.torproject.org/rs.html#details/"
)

var (
	thickRule = strings.Repeat("=", 60)
	thinRule  = strings.Repeat("-", 40)
	footRule  = strings.Repeat("-", 60)
)

// Text renders the full report document. When the control connection
// failed, rendering stops after the errors section: nothing else in the
// report is trustworthy.
func Text(rep *relay.Report) string {
	var lines []string

	// Header
	lines = append(lines, thickRule)
	lines = append(lines, fmt.Sprintf("  TOR RELAY REPORT: %s", orDefault(rep.Nickname, "Unknown")))
	lines = append(lines, fmt.Sprintf("  Generated: %s", rep.Generated.Format(generatedLayout)))
	lines = append(lines, fmt.Sprintf("  Host: %s", orDefault(rep.Hostname, "unknown")))
	lines = append(lines, thickRule)
	lines = append(lines, "")

	// Warnings section (if any)
	if len(rep.Warnings) > 0 {
		lines = append(lines, "ALERTS", thinRule)
		lines = append(lines, rep.Warnings...)
		lines = append(lines, "")
	}

	// Errors section (if any)
	if len(rep.Errors) > 0 {
		lines = append(lines, "ERRORS", thinRule)
		for _, e := range rep.Errors {
			lines = append(lines, "❌ "+e)
		}
		lines = append(lines, "")
		// If we had connection errors, not much else to show
		if rep.ConnectionFailed {
			return strings.Join(lines, "\n")
		}
	}

	// Status
	lines = append(lines, "STATUS", thinRule)
	circuit := "❌ NOT Established"
	if rep.CircuitsEstablished != nil && *rep.CircuitsEstablished {
		circuit = "✅ Established"
	}
	lines = append(lines, fmt.Sprintf("  Circuits:      %s", circuit))
	lines = append(lines, fmt.Sprintf("  Connections:   %s", orNAInt(rep.ConnectionCount)))
	lines = append(lines, fmt.Sprintf("  Uptime:        %s", orDefault(rep.UptimeHuman, "N/A")))
	lines = append(lines, fmt.Sprintf("  Tor Version:   %s", orDefault(rep.Version, "N/A")))
	lines = append(lines, "")

	// Relay identity
	lines = append(lines, "RELAY IDENTITY", thinRule)
	lines = append(lines, fmt.Sprintf("  Nickname:      %s", orDefault(rep.Nickname, "N/A")))
	lines = append(lines, fmt.Sprintf("  Address:       %s:%s",
		orDefault(rep.Address, "N/A"), orDefault(rep.ORPort, "N/A")))
	lines = append(lines, fmt.Sprintf("  Fingerprint:   %s", orDefault(rep.Fingerprint, "N/A")))
	lines = append(lines, "")

	// Consensus flags
	lines = append(lines, "CONSENSUS FLAGS", thinRule)
	if len(rep.Flags) > 0 {
		lines = append(lines, "  "+strings.Join(rep.Flags, ", "))
	} else {
		lines = append(lines, "  (none)")
	}
	lines = append(lines, "")

	// Traffic, with restart time derived from uptime
	if rep.UptimeSeconds > 0 {
		restart := rep.Generated.Add(-time.Duration(rep.UptimeSeconds) * time.Second)
		lines = append(lines, fmt.Sprintf("TRAFFIC SINCE RESTART (%s)", restart.Format(restartLayout)))
	} else {
		lines = append(lines, "TRAFFIC SINCE RESTART")
	}
	lines = append(lines, thinRule)
	lines = append(lines, fmt.Sprintf("  Read:          %s", orDefault(rep.ReadHuman, "N/A")))
	lines = append(lines, fmt.Sprintf("  Written:       %s", orDefault(rep.WrittenHuman, "N/A")))
	if rep.UptimeSeconds > 0 {
		avgRead := float64(clampZero(rep.BytesRead)) / float64(rep.UptimeSeconds)
		avgWrite := float64(clampZero(rep.BytesWritten)) / float64(rep.UptimeSeconds)
		lines = append(lines, fmt.Sprintf("  Avg Read:      %s/s", relay.FormatBytes(avgRead)))
		lines = append(lines, fmt.Sprintf("  Avg Write:     %s/s", relay.FormatBytes(avgWrite)))
	}
	lines = append(lines, "")

	// Footer
	lines = append(lines, footRule)
	lines = append(lines, "Relay search: "+lookupURL+rep.Fingerprint)
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orNAInt(n int) string {
	if n < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", n)
}

func clampZero(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
