// Package testutil holds shared fakes for package tests.
package testutil

import (
	"errors"

	"torreport/internal/appconfig"
	"torreport/internal/torctl"
)

// FakeController is an in-memory stand-in for a control-port session.
// Zero value authenticates successfully and answers every query with the
// caller's default.
type FakeController struct {
	AuthErr error
	Info    map[string]string
	Conf    map[string]string
	NS      *torctl.NetworkStatus
	NSErr   error
	Closed  bool
}

func (f *FakeController) Authenticate() error { return f.AuthErr }

func (f *FakeController) GetInfo(key, def string) string {
	if v, ok := f.Info[key]; ok {
		return v
	}
	return def
}

func (f *FakeController) GetConf(key, def string) string {
	if v, ok := f.Conf[key]; ok {
		return v
	}
	return def
}

func (f *FakeController) NetworkStatus(fingerprint string) (*torctl.NetworkStatus, error) {
	if f.NSErr != nil {
		return nil, f.NSErr
	}
	if f.NS == nil {
		return nil, errors.New("unrecognized entry " + fingerprint)
	}
	return f.NS, nil
}

func (f *FakeController) Close() error {
	f.Closed = true
	return nil
}

// Config returns a canned configuration with the documented thresholds.
func Config() appconfig.Config {
	cfg := appconfig.Default()
	cfg.Report.From = "relay@example.com"
	cfg.Report.To = "operator@example.com"
	cfg.Report.MinConnectionsWarn = 100
	cfg.Report.MinConnectionsCrit = 50
	return cfg
}
