package bootstrap

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgd/core"
)

func TestListenBindsAddressWhenFDEmpty(t *testing.T) {
	params := core.ServerParameters{IP: "127.0.0.1", Port: 0, FD: ""}

	ln, err := Listen(params)
	require.NoError(t, err)
	defer ln.Close()

	addr, ok := ln.Addr().(*net.TCPAddr)
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1", addr.IP.String())
	assert.NotZero(t, addr.Port)
}

func TestListenBindFailureIsFatal(t *testing.T) {
	first, err := Listen(core.ServerParameters{IP: "127.0.0.1", Port: 0})
	require.NoError(t, err)
	defer first.Close()

	// Same port again: in use, no retry.
	port := first.Addr().(*net.TCPAddr).Port
	_, err = Listen(core.ServerParameters{IP: "127.0.0.1", Port: port})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding")
}

func TestListenAttachesInheritedDescriptor(t *testing.T) {
	// Stand in for a supervising process: open a socket, hand its
	// descriptor number down.
	parent, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer parent.Close()

	file, err := parent.(*net.TCPListener).File()
	require.NoError(t, err)
	defer file.Close()

	params := core.ServerParameters{FD: strconv.Itoa(int(file.Fd()))}
	ln, err := Listen(params)
	require.NoError(t, err)
	defer ln.Close()

	// The attached listener serves the same address as the parent socket;
	// no new bind happened.
	assert.Equal(t, parent.Addr().String(), ln.Addr().String())
}

func TestListenInvalidInheritedDescriptor(t *testing.T) {
	params := core.ServerParameters{FD: "4095"}

	_, err := Listen(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attaching inherited descriptor 4095")
}

func TestListenPathStrategyOpensTheFile(t *testing.T) {
	// A regular file is openable but holds no socket; recovery must fail
	// with the path in the error and the opened file must not leak.
	path := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.WriteFile(path, []byte("not a socket"), 0o644))

	_, err := Listen(core.ServerParameters{FD: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recovering socket from")
	assert.Contains(t, err.Error(), path)
}

func TestListenPathStrategyUnreadablePath(t *testing.T) {
	_, err := Listen(core.ServerParameters{FD: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening socket file")
}

func TestListenTrichotomyDiscrimination(t *testing.T) {
	// The same field selects all three strategies; the classification is
	// externally observable behavior.
	tests := []struct {
		name    string
		fd      string
		wantErr string
	}{
		{"empty means bind", "", ""},
		{"integer means inherited descriptor", "4095", "attaching inherited descriptor"},
		{"non-integer means path", "/no/such/socket/file", "opening socket file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ln, err := Listen(core.ServerParameters{IP: "127.0.0.1", Port: 0, FD: tt.fd})
			if tt.wantErr == "" {
				require.NoError(t, err)
				ln.Close()
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
