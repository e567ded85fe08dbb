package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Control defaults
	assert.Equal(t, "127.0.0.1", cfg.Control.Host)
	assert.Equal(t, 9051, cfg.Control.Port)
	assert.Empty(t, cfg.Control.Password)

	// SMTP defaults
	assert.Equal(t, "smtp.mail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.UseTLS)

	// Report defaults
	assert.Equal(t, "OnionPie", cfg.Report.Nickname)
	assert.Equal(t, 100, cfg.Report.MinConnectionsWarn)
	assert.Equal(t, 50, cfg.Report.MinConnectionsCrit)

	// Log defaults
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "production", cfg.Log.Mode)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, 30, cfg.Log.MaxAgeDays)
	assert.True(t, cfg.Log.Compress)
}

func TestConfig_ControlAddr(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1:9051", cfg.ControlAddr())

	cfg.Control.Host = "10.0.0.5"
	cfg.Control.Port = 9151
	assert.Equal(t, "10.0.0.5:9151", cfg.ControlAddr())
}

func TestConfig_SMTPAddr(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "smtp.mail.com:587", cfg.SMTPAddr())
}

func TestConfig_IsDebug(t *testing.T) {
	tests := []struct {
		mode     string
		expected bool
	}{
		{"debug", true},
		{"DEBUG", true},
		{"Debug", true},
		{"production", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := Config{Log: LogConfig{Mode: tt.mode}}
			assert.Equal(t, tt.expected, cfg.IsDebug())
		})
	}
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("TORREPORT_CONFIG", "/tmp/custom.json")
	assert.Equal(t, "/tmp/custom.json", ConfigPath())
}

func TestLoad_FileAndEnvLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "torreport.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"control": {"host": "192.168.1.2", "port": 9051},
		"report": {"nickname": "MyRelay", "min_connections_warn": 80, "min_connections_crit": 40}
	}`), 0o600))

	t.Setenv("TORREPORT_CONFIG", path)
	t.Setenv("TORREPORT_CONTROL_PORT", "9151")
	t.Setenv("TORREPORT_SMTP_USE_TLS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	// file values
	assert.Equal(t, "192.168.1.2", cfg.Control.Host)
	assert.Equal(t, "MyRelay", cfg.Report.Nickname)
	assert.Equal(t, 80, cfg.Report.MinConnectionsWarn)
	assert.Equal(t, 40, cfg.Report.MinConnectionsCrit)

	// env overrides win over the file
	assert.Equal(t, 9151, cfg.Control.Port)
	assert.False(t, cfg.SMTP.UseTLS)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TORREPORT_CONFIG", filepath.Join(t.TempDir(), "nope.json"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Control, cfg.Control)
}

func TestLoad_InvalidJSONFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "torreport.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	t.Setenv("TORREPORT_CONFIG", path)

	cfg, err := Load()
	assert.Error(t, err)
	assert.Equal(t, Default().Control, cfg.Control)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "torreport.json")
	t.Setenv("TORREPORT_CONFIG", path)

	want := Default()
	want.Report.Nickname = "RoundTrip"
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "RoundTrip", got.Report.Nickname)
}
