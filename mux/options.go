package mux

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

type Option func(*options)

// options represents optional parameters.
type options struct {
	staticFS   Handler
	staticPath string
	tracer     trace.Tracer
	logger     *slog.Logger
	globalMW   []Middleware
	mw         []Middleware
}

// WithGlobalMiddleware appends the given middleware to the global stack
// that wraps every request, including unmatched routes.
func WithGlobalMiddleware(mw ...Middleware) Option {
	return Option(func(opts *options) {
		opts.globalMW = append(opts.globalMW, mw...)
	})
}

// WithMiddleware appends the given middleware to the route-level stack
// wrapped around every registered handler.
func WithMiddleware(mw ...Middleware) Option {
	return Option(func(opts *options) {
		opts.mw = append(opts.mw, mw...)
	})
}

// WithTracer injects the given tracer into the App.
func WithTracer(tracer trace.Tracer) Option {
	return Option(func(opts *options) {
		opts.tracer = tracer
	})
}

// WithLogger sets the logger used by the App for internal errors.
func WithLogger(log *slog.Logger) Option {
	return Option(func(opts *options) {
		opts.logger = log
	})
}

// WithStaticFS serves static files from fsys under the given URL path prefix.
// The prefix is stripped before looking up files in fsys. SSR pages typically
// use this for stylesheets and the htmx script itself.
func WithStaticFS(fsys fs.FS, pathPrefix string) Option {
	return Option(func(opts *options) {
		fsHandler := http.StripPrefix(pathPrefix, http.FileServer(http.FS(fsys)))
		opts.staticFS = Adapt(fsHandler)
		opts.staticPath = pathPrefix
	})
}

// Adapt converts a standard http.Handler into a mux Handler, enabling
// registration of third-party or stdlib handlers on the App.
func Adapt(h http.Handler) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	}
}
