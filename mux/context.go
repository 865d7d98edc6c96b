package mux

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type ctxKey int

const valuesKey ctxKey = iota + 1

// htmx request headers read at dispatch. Redeclared here rather than
// imported from the root package, which depends on mux.
const (
	hdrHXRequest = "HX-Request"
	hdrHXBoosted = "HX-Boosted"
	hdrHXTarget  = "HX-Target"
)

// Values carries per-request state between the mux and its middleware:
// tracing identity, timing, the response status as it becomes known, and
// the htmx negotiation result. Fragment is true when the client asked for
// a swappable fragment rather than a full page (HX-Request without
// HX-Boosted), and Target holds the id of the element it will be swapped
// into, when htmx sent one.
type Values struct {
	TraceID    string
	Now        time.Time
	Tracer     trace.Tracer
	StatusCode int
	Fragment   bool
	Target     string
}

// newValues builds the Values for an incoming request.
func newValues(traceID string, tracer trace.Tracer, r *http.Request) *Values {
	return &Values{
		TraceID:  traceID,
		Now:      time.Now().UTC(),
		Tracer:   tracer,
		Fragment: r.Header.Get(hdrHXRequest) == "true" && r.Header.Get(hdrHXBoosted) != "true",
		Target:   r.Header.Get(hdrHXTarget),
	}
}

// SetStatusCode updates the request Values' status code.
func SetStatusCode(ctx context.Context, statusCode int) {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok {
		return
	}

	v.StatusCode = statusCode
}

// GetValues retrieves the Values from the given context, returning a
// placeholder with a nil trace ID and no-op tracer when the request did
// not pass through the mux.
func GetValues(ctx context.Context) *Values {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok {
		return &Values{
			TraceID: uuid.Nil.String(),
			Tracer:  noop.NewTracerProvider().Tracer(""),
			Now:     time.Now(),
		}
	}

	return v
}

// GetTraceID retrieves the current trace ID from the Values in the given
// context. We return an empty uuid for testing purposes if not set.
func GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok {
		return uuid.Nil.String()
	}

	return v.TraceID
}

// AddSpan adds a span to the tracer, returning it and the context.
func AddSpan(ctx context.Context, spanName string, keyValues ...attribute.KeyValue) (context.Context, trace.Span) {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok || v.Tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	ctx, span := v.Tracer.Start(ctx, spanName)
	span.SetAttributes(keyValues...)

	return ctx, span
}

func setValues(ctx context.Context, v *Values) context.Context {
	return context.WithValue(ctx, valuesKey, v)
}
