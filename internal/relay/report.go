package relay

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Accounting holds the optional bandwidth-accounting state, attached only
// when accounting is enabled on the relay.
type Accounting struct {
	BytesLeft   string
	IntervalEnd string
}

// Report is the flat record one collection run produces. Fields are set at
// most once; absent optional fields keep their sentinel (-1 for counters,
// nil for pointers, "" for strings) and render downstream as "N/A".
type Report struct {
	RunID     string
	Generated time.Time
	Hostname  string

	Version       string
	UptimeSeconds int64 // -1 = unknown
	UptimeHuman   string

	BytesRead    int64 // -1 = unknown
	BytesWritten int64 // -1 = unknown
	ReadHuman    string
	WrittenHuman string

	Fingerprint string
	Nickname    string
	Address     string
	ORPort      string

	CircuitsEstablished *bool
	ConnectionCount     int // -1 = unknown

	// Consensus view. FlagsKnown distinguishes a genuine flag list from
	// the unavailable placeholder.
	Flags      []string
	FlagsKnown bool
	Bandwidth  int64
	Published  time.Time

	Accounting *Accounting

	// Append-only diagnostics; order is display order.
	Warnings []string
	Errors   []string

	// ConnectionFailed marks that the control session never came up, so
	// nothing beyond the diagnostics is trustworthy.
	ConnectionFailed bool
}

// NewReport returns an empty report stamped with run ID and generation time.
func NewReport(hostname string) *Report {
	return &Report{
		RunID:           uuid.NewString(),
		Generated:       time.Now(),
		Hostname:        hostname,
		UptimeSeconds:   -1,
		BytesRead:       -1,
		BytesWritten:    -1,
		ConnectionCount: -1,
	}
}

// Warnf appends a formatted warning.
func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Errorf appends a formatted error.
func (r *Report) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
