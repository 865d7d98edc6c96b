package server

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

// listenFDsVar follows the systemd/listenfd socket-activation convention:
// it holds the count of file descriptors passed to the process, starting
// at fd 3.
const listenFDsVar = "LISTEN_FDS"

// listenPIDVar names the process the descriptors were passed to. A value
// that is not our own pid means LISTEN_FDS is stale, inherited from some
// ancestor, and fd 3 is not ours to adopt.
const listenPIDVar = "LISTEN_PID"

const listenFDStart = 3

// GetOrBindListener returns a TCP listener for the server, preferring one
// inherited from a process supervisor over a fresh bind on addr.
//
// Live-reload tools (and systemd socket activation) hand an already-bound
// socket down via LISTEN_FDS so the listening socket survives process
// restarts. When no inherited socket is available, or it is unusable, a new
// listener is bound on addr.
func GetOrBindListener(addr string) (net.Listener, error) {
	if ln, ok := inheritedListener(); ok {
		return ln, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &ListenerError{Err: fmt.Errorf("binding %s: %w", addr, err)}
	}

	return ln, nil
}

// inheritedListener recovers the first supervisor-passed socket, if any.
func inheritedListener() (net.Listener, bool) {
	n, err := strconv.Atoi(os.Getenv(listenFDsVar))
	if err != nil || n < 1 {
		return nil, false
	}

	pid, err := strconv.Atoi(os.Getenv(listenPIDVar))
	if err != nil || pid != os.Getpid() {
		return nil, false
	}

	f := os.NewFile(uintptr(listenFDStart), "inherited listener")
	if f == nil {
		return nil, false
	}
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, false
	}

	return ln, true
}
