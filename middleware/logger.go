package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamwoolhether/htmxssr/mux"
)

// Logger writes one line on entry and one on completion per request, so
// fragment swaps can be told apart from full page loads when reading logs.
func Logger(log *slog.Logger) mux.Middleware {
	m := func(handler mux.Handler) mux.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			v := mux.GetValues(ctx)

			reqLog := log.With("trace_id", v.TraceID, "method", r.Method, "path", requestPath(r))
			if v.Fragment {
				reqLog = reqLog.With("hx_target", v.Target)
			}

			reqLog.Info("request started", "remoteaddr", r.RemoteAddr, "fragment", v.Fragment)

			err := handler(ctx, w, r)

			reqLog.Info("request completed", "statusCode", v.StatusCode, "since", time.Since(v.Now).String())

			return err
		}

		return h
	}

	return m
}

func requestPath(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}

	return r.URL.Path + "?" + r.URL.RawQuery
}
