package executor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"
)

// ErrServerUnreachable is returned when the scenario's server does not
// accept connections.
var ErrServerUnreachable = errors.New("server unreachable")

// CheckServer dials the host of baseURL over TCP.
func CheckServer(ctx context.Context, baseURL string, timeout time.Duration) error {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return fmt.Errorf("%w: invalid base URL %q", ErrServerUnreachable, baseURL)
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	addr := net.JoinHostPort(u.Hostname(), port)

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrServerUnreachable, addr, err)
	}
	return conn.Close()
}
