package htmxssr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/adamwoolhether/htmxssr/errs"
	"github.com/adamwoolhether/htmxssr/mux"
	"github.com/adamwoolhether/htmxssr/server"
)

// RespondJSON to an HTTP request, setting the status code and body if any.
func RespondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) error {
	mux.SetStatusCode(ctx, statusCode)

	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err = w.Write(jsonData); err != nil {
		return err
	}

	return nil
}

// RespondHTML executes the named template and writes the result as an HTML
// response. The template is executed into a buffer first, so a failing
// template never leaves a half-written page on the wire.
func RespondHTML(ctx context.Context, w http.ResponseWriter, statusCode int, tmpl *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("execute template %q: %w", name, err)
	}

	mux.SetStatusCode(ctx, statusCode)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// RespondError writes a structured JSON error response using the
// status code and message from the given *errs.Error.
func RespondError(ctx context.Context, w http.ResponseWriter, err *errs.Error) error {
	return RespondJSON(ctx, w, err.Code, err)
}

// Redirect issues an HTTP redirect to the given URL. The status code
// must be in the 3xx range or an error is returned.
func Redirect(ctx context.Context, w http.ResponseWriter, r *http.Request, url string, code int) error {
	if code < 300 || code > 399 {
		return fmt.Errorf("invalid redirect code: %d", code)
	}

	mux.SetStatusCode(ctx, code)

	http.Redirect(w, r, url, code)

	return nil
}

// Funcs returns template helpers bound to the request context. absURL joins
// a path onto the server's resolved base URL, for links that must be
// absolute (emails, og:url, canonical tags).
func Funcs(ctx context.Context) template.FuncMap {
	state := server.StateFrom(ctx)

	return template.FuncMap{
		"absURL": state.AbsURL,
	}
}
