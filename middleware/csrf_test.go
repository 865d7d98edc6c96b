package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adamwoolhether/htmxssr"
	"github.com/adamwoolhether/htmxssr/middleware"
)

func TestCSRF_BlocksCrossOrigin(t *testing.T) {
	mw := middleware.CSRF(discardLogger())
	handler := mw(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/submit", nil)
	r.Header.Set("Sec-Fetch-Site", "cross-site")

	handler(r.Context(), w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// A rejected htmx request gets an HTML fragment suitable for swapping, not
// the plain-text denial.
func TestCSRF_BlocksHTMXWithFragment(t *testing.T) {
	mw := middleware.CSRF(discardLogger())
	handler := mw(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/submit", nil)
	r.Header.Set("Sec-Fetch-Site", "cross-site")
	r.Header.Set(htmxssr.HeaderRequest, "true")

	handler(r.Context(), w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("Content-Type = %q, want text/html for htmx request", ct)
	}
	if !strings.Contains(w.Body.String(), http.StatusText(http.StatusForbidden)) {
		t.Fatalf("fragment missing status text: %s", w.Body.String())
	}
}

func TestCSRF_AllowsSameOrigin(t *testing.T) {
	mw := middleware.CSRF(discardLogger())
	handler := mw(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/submit", nil)
	r.Header.Set("Sec-Fetch-Site", "same-origin")

	if err := handler(r.Context(), w, r); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCSRF_AllowsSafeMethods(t *testing.T) {
	mw := middleware.CSRF(discardLogger())
	handler := mw(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/page", nil)
	r.Header.Set("Sec-Fetch-Site", "cross-site")

	if err := handler(r.Context(), w, r); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCSRF_TrustedOrigin(t *testing.T) {
	mw := middleware.CSRF(discardLogger(), "https://trusted.example.com")
	handler := mw(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/submit", nil)
	r.Header.Set("Sec-Fetch-Site", "cross-site")
	r.Header.Set("Origin", "https://trusted.example.com")

	if err := handler(r.Context(), w, r); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
