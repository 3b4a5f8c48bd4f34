package bootstrap

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"imgd/config"
	"imgd/core"
)

// Listen acquires the listening socket. The fd parameter picks one of
// three strategies:
//
//   - empty: bind a new TCP socket to (ip, port)
//   - bare integer: attach that already-open inherited descriptor
//   - anything else: a filesystem path whose descriptor identifies a
//     pre-opened socket; open it and recover the socket from it
//
// Acquisition failure is fatal to startup; there is no retry. In the path
// case the opened file is closed even when descriptor recovery fails.
func Listen(params core.ServerParameters) (net.Listener, error) {
	if params.FD == "" {
		addr := net.JoinHostPort(params.IP, strconv.Itoa(params.Port))
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", addr, err)
		}
		return ln, nil
	}

	if fd, ok := config.AsInteger(params.FD); ok {
		// net.FileListener dups the descriptor, so the wrapper file is
		// closed without affecting the listener.
		file := os.NewFile(uintptr(fd), "inherited-socket")
		if file == nil {
			return nil, fmt.Errorf("invalid inherited descriptor %d", fd)
		}
		defer file.Close()
		ln, err := net.FileListener(file)
		if err != nil {
			return nil, fmt.Errorf("attaching inherited descriptor %d: %w", fd, err)
		}
		return ln, nil
	}

	file, err := os.Open(params.FD)
	if err != nil {
		return nil, fmt.Errorf("opening socket file %q: %w", params.FD, err)
	}
	defer file.Close()
	ln, err := net.FileListener(file)
	if err != nil {
		return nil, fmt.Errorf("recovering socket from %q: %w", params.FD, err)
	}
	return ln, nil
}
