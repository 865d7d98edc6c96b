package middleware

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/adamwoolhether/htmxssr"
	"github.com/adamwoolhether/htmxssr/errs"
	"github.com/adamwoolhether/htmxssr/mux"
)

// RateLimit restricts the request rate for the whole server with a token
// bucket limiter, answering 429 when the bucket is empty. Unlike an
// outbound throttle there is no waiting: a browser is better served by a
// fast rejection and a Retry-After hint than by a stalled connection.
//
// RateLimit panics if rps or burst is not greater than zero.
func RateLimit(rps, burst int) mux.Middleware {
	if rps <= 0 || burst <= 0 {
		panic(fmt.Sprintf("middleware: rate limit rps[%d] and burst[%d] must be greater than zero", rps, burst))
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	m := func(handler mux.Handler) mux.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")

				return htmxssr.RespondError(ctx, w, errs.New(http.StatusTooManyRequests, fmt.Errorf("rate limit of %d req/s exceeded", rps)))
			}

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
