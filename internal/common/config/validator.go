package config

import (
	"fmt"
	"net/url"

	"github.com/amoylab/sessiongate/internal/common/cnst"
)

// Validate checks the configuration for values the gate cannot run with
func (c *GatewayConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", cnst.ErrInvalidPort, c.Port)
	}
	if c.Auth.Namespace == "" {
		return cnst.ErrEmptyNamespace
	}
	if c.Auth.LoginType == "" {
		return cnst.ErrEmptyLoginType
	}

	switch c.Session.Type {
	case cnst.SessionStoreMemory:
		if c.Session.Memory.File == "" {
			return cnst.ErrMissingMemoryFile
		}
	case cnst.SessionStoreRedis:
		if c.Session.Redis.Addr == "" {
			return cnst.ErrMissingRedisAddr
		}
	case cnst.SessionStoreDB:
		if c.Session.Database.DSN == "" {
			return cnst.ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %s", cnst.ErrUnsupportedStore, c.Session.Type)
	}

	if c.Upstream.URL != "" {
		u, err := url.Parse(c.Upstream.URL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: %q", cnst.ErrInvalidUpstream, c.Upstream.URL)
		}
	}
	return nil
}
