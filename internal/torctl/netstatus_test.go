package torctl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEntry = `r OnionPie pLZLbk0CfXyvGtyIhc0rLr7YQ9U mAuhvroPBWvbM+PBWqtEL6d1Z2c 2026-08-25 07:31:02 203.0.113.7 9001 0
s Fast Running Stable V2Dir Valid
w Bandwidth=20480`

func TestParseNetworkStatus(t *testing.T) {
	ns, err := parseNetworkStatus(sampleEntry)
	require.NoError(t, err)

	assert.Equal(t, []string{"Fast", "Running", "Stable", "V2Dir", "Valid"}, ns.Flags)
	assert.Equal(t, int64(20480), ns.Bandwidth)
	assert.Equal(t, time.Date(2026, 8, 25, 7, 31, 2, 0, time.UTC), ns.Published)
}

func TestParseNetworkStatus_NoFlagsLine(t *testing.T) {
	ns, err := parseNetworkStatus("r Nick id digest 2026-01-02 03:04:05 198.51.100.1 443 0")
	require.NoError(t, err)
	assert.Empty(t, ns.Flags)
	assert.Zero(t, ns.Bandwidth)
}

func TestParseNetworkStatus_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"no r line", "s Running Valid\nw Bandwidth=1"},
		{"short r line", "r Nick id"},
		{"bad timestamp", "r Nick id digest not-a-date 07:00:00 1.2.3.4 9001 0"},
		{"bad bandwidth", sampleEntry + "\nw Bandwidth=lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseNetworkStatus(tt.doc)
			assert.Error(t, err)
		})
	}
}

func TestParseNetworkStatus_IgnoresUnknownLines(t *testing.T) {
	ns, err := parseNetworkStatus(sampleEntry + "\na [2001:db8::1]:9001\npr Cons=1-2 Desc=1-2")
	require.NoError(t, err)
	assert.Len(t, ns.Flags, 5)
}
