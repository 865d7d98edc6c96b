package server_test

import (
	"errors"
	"os"
	"testing"

	"github.com/adamwoolhether/htmxssr/server"
)

func TestGetOrBindListener_FreshBind(t *testing.T) {
	t.Setenv("LISTEN_FDS", "")
	os.Unsetenv("LISTEN_FDS")

	ln, err := server.GetOrBindListener("127.0.0.1:0")
	if err != nil {
		t.Fatalf("GetOrBindListener: %v", err)
	}
	defer ln.Close()

	if ln.Addr() == nil {
		t.Fatal("listener should have a bound address")
	}
}

func TestGetOrBindListener_BadAddr(t *testing.T) {
	t.Setenv("LISTEN_FDS", "")
	os.Unsetenv("LISTEN_FDS")

	_, err := server.GetOrBindListener("256.256.256.256:99999")

	var lnErr *server.ListenerError
	if !errors.As(err, &lnErr) {
		t.Fatalf("err = %v, want *ListenerError", err)
	}
	if lnErr.Unwrap() == nil {
		t.Fatal("ListenerError should wrap the bind error")
	}
}

func TestGetOrBindListener_GarbageListenFDs(t *testing.T) {
	t.Setenv("LISTEN_FDS", "not-a-number")

	ln, err := server.GetOrBindListener("127.0.0.1:0")
	if err != nil {
		t.Fatalf("GetOrBindListener should fall back to a fresh bind: %v", err)
	}

	ln.Close()
}

// Descriptors addressed to another process are stale; adopting fd 3 on the
// strength of LISTEN_FDS alone would close an unrelated file.
func TestGetOrBindListener_StaleListenPID(t *testing.T) {
	t.Setenv("LISTEN_FDS", "1")
	t.Setenv("LISTEN_PID", "1")

	ln, err := server.GetOrBindListener("127.0.0.1:0")
	if err != nil {
		t.Fatalf("GetOrBindListener should fall back to a fresh bind: %v", err)
	}

	ln.Close()
}

func TestGetOrBindListener_MissingListenPID(t *testing.T) {
	t.Setenv("LISTEN_FDS", "1")
	t.Setenv("LISTEN_PID", "")
	os.Unsetenv("LISTEN_PID")

	ln, err := server.GetOrBindListener("127.0.0.1:0")
	if err != nil {
		t.Fatalf("GetOrBindListener should fall back to a fresh bind: %v", err)
	}

	ln.Close()
}

func TestNewWithAutoReload(t *testing.T) {
	t.Setenv("LISTEN_FDS", "")
	os.Unsetenv("LISTEN_FDS")

	srv, err := server.NewWithAutoReload("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewWithAutoReload: %v", err)
	}

	if srv.Router() == nil {
		t.Fatal("router should be non-nil")
	}
}

func TestNewWithAutoReload_BindFailure(t *testing.T) {
	t.Setenv("LISTEN_FDS", "")
	os.Unsetenv("LISTEN_FDS")

	_, err := server.NewWithAutoReload("256.256.256.256:99999")

	var lnErr *server.ListenerError
	if !errors.As(err, &lnErr) {
		t.Fatalf("err = %v, want *ListenerError", err)
	}
}
