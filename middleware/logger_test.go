package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adamwoolhether/htmxssr"
	"github.com/adamwoolhether/htmxssr/middleware"
	"github.com/adamwoolhether/htmxssr/mux"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	mw := middleware.Logger(log)
	handler := mw(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/hello", nil)
	r.RemoteAddr = "127.0.0.1:1234"

	handler(r.Context(), w, r)

	output := buf.String()
	if !strings.Contains(output, "request started") {
		t.Fatalf("expected 'request started' in log output: %s", output)
	}
	if !strings.Contains(output, "request completed") {
		t.Fatalf("expected 'request completed' in log output: %s", output)
	}
	if !strings.Contains(output, "GET") {
		t.Fatalf("expected method in log output: %s", output)
	}
	if !strings.Contains(output, "/hello") {
		t.Fatalf("expected path in log output: %s", output)
	}
	if !strings.Contains(output, "127.0.0.1:1234") {
		t.Fatalf("expected remoteaddr in log output: %s", output)
	}
}

// Fragment requests carry the htmx target through to the log line.
func TestLogger_HTMXFields(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	app := mux.New(mux.WithMiddleware(middleware.Logger(log)))
	app.Get("/rows", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/rows", nil)
	r.Header.Set(htmxssr.HeaderRequest, "true")
	r.Header.Set(htmxssr.HeaderTarget, "row-list")

	app.ServeHTTP(w, r)

	output := buf.String()
	if !strings.Contains(output, "fragment=true") {
		t.Fatalf("expected fragment=true in log output: %s", output)
	}
	if !strings.Contains(output, "row-list") {
		t.Fatalf("expected hx target in log output: %s", output)
	}
}

func TestLogger_WithQuery(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	mw := middleware.Logger(log)
	handler := mw(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/search?q=htmx", nil)

	handler(r.Context(), w, r)

	if !strings.Contains(buf.String(), "/search?q=htmx") {
		t.Fatalf("expected query string in log output: %s", buf.String())
	}
}
