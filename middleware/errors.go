package middleware

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/adamwoolhether/htmxssr"
	"github.com/adamwoolhether/htmxssr/errs"
	"github.com/adamwoolhether/htmxssr/mux"
)

// Errors handles errors coming out of the call chain. htmx requests get a
// ready-to-swap HTML fragment; everything else gets structured JSON.
func Errors(log *slog.Logger) mux.Middleware {
	m := func(handler mux.Handler) mux.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			if fieldErr, ok := errors.AsType[errs.FieldErrors](err); ok {
				if htmxssr.IsHTMX(r) {
					return respondFragment(ctx, w, http.StatusUnprocessableEntity, fieldMessages(fieldErr))
				}

				return htmxssr.RespondJSON(ctx, w, http.StatusUnprocessableEntity, fieldErr)
			}

			appErr, ok := errors.AsType[*errs.Error](err)
			if !ok { // to catch errs that may have escaped, obscure them from public view.
				appErr = errs.NewInternal(err)
			}

			reqLog := log.With("trace_id", mux.GetTraceID(ctx))
			reqLog.Error(err.Error(), "source_err_file", path.Base(appErr.FileName), "source_err_func", path.Base(appErr.FuncName))

			if appErr.InnerErr { // after logging, obscure the internal error from public view.
				appErr.Message = http.StatusText(appErr.Code)
			}

			if htmxssr.IsHTMX(r) {
				if appErr.Retarget != "" {
					htmxssr.HXRetarget(w, appErr.Retarget)
				}
				if appErr.Reswap != "" {
					htmxssr.HXReswap(w, appErr.Reswap)
				}

				return respondFragment(ctx, w, appErr.Code, appErr.Message)
			}

			return htmxssr.RespondJSON(ctx, w, appErr.Code, appErr)
		}

		return h
	}

	return m
}

// respondFragment writes the error as an HTML snippet htmx can swap into
// the page.
func respondFragment(ctx context.Context, w http.ResponseWriter, code int, msg string) error {
	mux.SetStatusCode(ctx, code)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	_, err := fmt.Fprintf(w, `<div class="htmxssr-error">%s</div>`, template.HTMLEscapeString(msg))

	return err
}

func fieldMessages(fe errs.FieldErrors) string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}

	return strings.Join(parts, "; ")
}
