package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/adamwoolhether/htmxssr/errs"
	"github.com/adamwoolhether/htmxssr/mux"
)

// Panics converts a panicking handler into an internal error, so one broken
// page handler cannot take the accept loop down and the stack trace is
// logged instead of swapped into somebody's page.
func Panics() mux.Middleware {
	m := func(handler mux.Handler) mux.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = errs.NewInternal(fmt.Errorf("panic serving %s %s: %v trace: %s", r.Method, r.URL.Path, rec, debug.Stack()))
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
