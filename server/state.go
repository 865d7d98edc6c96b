package server

import (
	"context"
	"net"
	"net/url"
)

// State is the effective server state, resolved once per run and shared
// read-only by every request. No field may be mutated after construction;
// that invariant is what allows lock-free sharing across handlers.
type State struct {
	// BaseURL is the resolved base URL of the server. Never nil.
	BaseURL *url.URL

	// LocalAddr is the listener's bound local address.
	LocalAddr net.Addr
}

// NewState resolves the effective state from the given options and the
// listener's bound address. An explicit Options.BaseURL is used verbatim,
// without validation against addr: behind a reverse proxy the externally
// visible address legitimately differs from the bind address. Otherwise the
// base URL is synthesized from addr with a plain http scheme; a deployment
// terminating TLS upstream must supply the https URL explicitly.
func NewState(opts Options, addr net.Addr) *State {
	base := opts.BaseURL
	if base == nil {
		base = &url.URL{Scheme: "http", Host: addr.String()}
	}

	return &State{
		BaseURL:   base,
		LocalAddr: addr,
	}
}

// AbsURL joins path onto the base URL, producing an absolute link suitable
// for server-rendered output.
func (s *State) AbsURL(path string) string {
	return s.BaseURL.JoinPath(path).String()
}

type ctxKey int

const stateKey ctxKey = 1

// NewContext returns a context carrying the given state.
func NewContext(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

// StateFrom retrieves the State from the given context. A localhost default
// is returned if no state is present, so templates render in tests without
// a running server.
func StateFrom(ctx context.Context) *State {
	s, ok := ctx.Value(stateKey).(*State)
	if !ok {
		return &State{BaseURL: &url.URL{Scheme: "http", Host: "localhost"}}
	}

	return s
}
