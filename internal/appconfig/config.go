package appconfig

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type ControlConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
}

type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	UseTLS   bool   `json:"use_tls"`
}

type ReportConfig struct {
	From               string `json:"from"`
	To                 string `json:"to"`
	Nickname           string `json:"nickname"`
	MinConnectionsWarn int    `json:"min_connections_warn"`
	MinConnectionsCrit int    `json:"min_connections_crit"`
}

type LogConfig struct {
	Level      string `json:"level"`
	Mode       string `json:"mode"`
	FilePath   string `json:"file_path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

type Config struct {
	Control ControlConfig `json:"control"`
	SMTP    SMTPConfig    `json:"smtp"`
	Report  ReportConfig  `json:"report"`
	Log     LogConfig     `json:"log"`
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".torreport")
}

func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		Control: ControlConfig{
			Host:     "127.0.0.1",
			Port:     9051,
			Password: "",
		},
		SMTP: SMTPConfig{
			Host:   "smtp.mail.com",
			Port:   587,
			UseTLS: true,
		},
		Report: ReportConfig{
			From:               "",
			To:                 "",
			Nickname:           "OnionPie",
			MinConnectionsWarn: 100,
			MinConnectionsCrit: 50,
		},
		Log: LogConfig{
			Level:      "info",
			Mode:       "production",
			FilePath:   filepath.Join(dataDir, "torreport.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

func ConfigPath() string {
	if custom := strings.TrimSpace(os.Getenv("TORREPORT_CONFIG")); custom != "" {
		return custom
	}
	return filepath.Join(defaultDataDir(), "torreport.json")
}

func Load() (Config, error) {
	cfg := Default()

	// Layer 1: config file
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if err == nil && len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Default(), err
		}
	}

	// Layer 2: environment variables override
	applyEnvOverrides(&cfg)

	return cfg, nil
}

func Save(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// ControlAddr returns the control port dial address.
func (c *Config) ControlAddr() string {
	return net.JoinHostPort(c.Control.Host, strconv.Itoa(c.Control.Port))
}

// SMTPAddr returns the mail transport dial address.
func (c *Config) SMTPAddr() string {
	return net.JoinHostPort(c.SMTP.Host, strconv.Itoa(c.SMTP.Port))
}

func (c *Config) IsDebug() bool {
	return strings.EqualFold(c.Log.Mode, "debug")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TORREPORT_CONTROL_HOST"); v != "" {
		cfg.Control.Host = v
	}
	if v := os.Getenv("TORREPORT_CONTROL_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Control.Port = p
		}
	}
	if v := os.Getenv("TORREPORT_CONTROL_PASSWORD"); v != "" {
		cfg.Control.Password = v
	}
	if v := os.Getenv("TORREPORT_SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("TORREPORT_SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if v := os.Getenv("TORREPORT_SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("TORREPORT_SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("TORREPORT_SMTP_USE_TLS"); v != "" {
		cfg.SMTP.UseTLS = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TORREPORT_MAIL_FROM"); v != "" {
		cfg.Report.From = v
	}
	if v := os.Getenv("TORREPORT_MAIL_TO"); v != "" {
		cfg.Report.To = v
	}
	if v := os.Getenv("TORREPORT_NICKNAME"); v != "" {
		cfg.Report.Nickname = v
	}
	if v := os.Getenv("TORREPORT_MIN_CONNECTIONS_WARN"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Report.MinConnectionsWarn = p
		}
	}
	if v := os.Getenv("TORREPORT_MIN_CONNECTIONS_CRIT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Report.MinConnectionsCrit = p
		}
	}
	if v := os.Getenv("TORREPORT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TORREPORT_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}
	if v := os.Getenv("TORREPORT_LOG_FILE"); v != "" {
		cfg.Log.FilePath = v
	}
}
