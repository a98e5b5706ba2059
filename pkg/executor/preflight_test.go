package executor

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closedAddr returns the URL of a local port nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return "http://" + addr
}

func TestCheckServer_Reachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = CheckServer(context.Background(), "http://"+ln.Addr().String()+"/app", time.Second)
	assert.NoError(t, err)
}

func TestCheckServer_Unreachable(t *testing.T) {
	err := CheckServer(context.Background(), closedAddr(t), time.Second)
	assert.ErrorIs(t, err, ErrServerUnreachable)
}

func TestCheckServer_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "http://"} {
		err := CheckServer(context.Background(), raw, time.Second)
		assert.ErrorIs(t, err, ErrServerUnreachable, raw)
	}
}

func TestCheckServer_Cancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = CheckServer(ctx, "http://"+ln.Addr().String(), time.Second)
	assert.ErrorIs(t, err, ErrServerUnreachable)
}
