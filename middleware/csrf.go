package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/adamwoolhether/htmxssr"
	"github.com/adamwoolhether/htmxssr/mux"
)

// CSRF guards form posts with the standard library CrossOriginProtection.
// Same-origin htmx requests pass the Sec-Fetch-Site check untouched; a
// rejected htmx request receives a swappable error fragment instead of the
// plain-text denial, so the user sees the failure inline.
func CSRF(logger *slog.Logger, allowedOrigins ...string) mux.Middleware {
	cop := http.NewCrossOriginProtection()
	cop.SetDenyHandler(denyHandler(logger))
	for _, origin := range allowedOrigins {
		if err := cop.AddTrustedOrigin(origin); err != nil {
			panic(err)
		}
	}

	m := func(handler mux.Handler) mux.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			std := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx = r.Context()

				err = handler(ctx, w, r)
			})

			cop.Handler(std).ServeHTTP(w, r.WithContext(ctx))

			return err
		}

		return h
	}

	return m
}

func denyHandler(logger *slog.Logger) http.HandlerFunc {
	f := func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("cross-origin form post rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"origin", r.Header.Get("Origin"),
			"hx_current_url", htmxssr.CurrentURL(r))

		if htmxssr.IsHTMX(r) {
			_ = respondFragment(r.Context(), w, http.StatusForbidden, http.StatusText(http.StatusForbidden))
			return
		}

		mux.SetStatusCode(r.Context(), http.StatusForbidden)
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	}

	return f
}
