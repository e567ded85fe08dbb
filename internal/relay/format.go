package relay

import (
	"fmt"
	"math"
	"strings"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte quantity with two decimals in the smallest
// unit that keeps the magnitude under 1024, falling through to PB.
func FormatBytes(n float64) string {
	for _, unit := range byteUnits {
		if math.Abs(n) < 1024.0 {
			return fmt.Sprintf("%.2f %s", n, unit)
		}
		n /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", n)
}

// FormatDuration renders seconds as a day/hour/minute/second breakdown.
// Zero-valued units are dropped except seconds, which is kept whenever it
// is nonzero or nothing else was emitted, so the result is never empty.
func FormatDuration(seconds int64) string {
	days := seconds / 86400
	rem := seconds % 86400
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	secs := rem % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}

	return strings.Join(parts, " ")
}
