// Package torctl wraps the Tor control-port protocol behind a narrow
// query surface. Framing, PROTOCOLINFO negotiation and cookie/password
// authentication are delegated to github.com/cretz/bine/control.
package torctl

import (
	"net"
	"net/textproto"
	"strconv"
	"time"

	"torreport/internal/appconfig"
	"torreport/internal/logger"

	"github.com/cretz/bine/control"
)

const dialTimeout = 10 * time.Second

// Client is a session on a running Tor daemon's control port.
type Client struct {
	cfg  appconfig.ControlConfig
	conn *control.Conn
}

// Dial opens a TCP connection to the control port. The session is not
// usable until Authenticate succeeds.
func Dial(cfg appconfig.ControlConfig) (*Client, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	netConn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, err
	}
	conn := control.NewConn(textproto.NewConn(netConn))
	return &Client{cfg: cfg, conn: conn}, nil
}

// Authenticate logs in using the configured password. With an empty
// password bine negotiates cookie (or null) auth via PROTOCOLINFO.
func (c *Client) Authenticate() error {
	return c.conn.Authenticate(c.cfg.Password)
}

// Close sends QUIT and tears down the session.
func (c *Client) Close() error {
	return c.conn.Close()
}

// GetInfo issues GETINFO for a single key and returns def on any failure.
func (c *Client) GetInfo(key, def string) string {
	kvs, err := c.conn.GetInfo(key)
	if err != nil || len(kvs) == 0 {
		logger.Collect.Debug().Err(err).Str("key", key).Msg("GETINFO failed, using default")
		return def
	}
	return kvs[0].Val
}

// GetConf issues GETCONF for a single option and returns def when the
// option is unset or the query fails.
func (c *Client) GetConf(key, def string) string {
	kvs, err := c.conn.GetConf(key)
	if err != nil || len(kvs) == 0 || kvs[0].Val == "" {
		logger.Collect.Debug().Err(err).Str("key", key).Msg("GETCONF failed or unset, using default")
		return def
	}
	return kvs[0].Val
}
