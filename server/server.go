package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/adamwoolhether/htmxssr/mux"
)

// Server owns a bound listener, a routing table, and an optional graceful
// shutdown trigger. Configure it with the With* methods, then call Serve
// exactly once; the listener and router are handed to the accept loop and
// the Server must not be reused.
type Server struct {
	listener net.Listener
	router   *mux.App
	shutdown <-chan struct{}
	opts     Options
	logger   *slog.Logger
	consumed atomic.Bool

	// stopNotify releases the interrupt watcher once Serve returns.
	stopNotify func()
}

// New creates a Server for the given pre-bound listener, with an empty
// routing table, no shutdown signal, default options, and slog.Default().
func New(ln net.Listener) *Server {
	return &Server{
		listener: ln,
		router:   mux.New(),
		logger:   slog.Default(),
	}
}

// NewWithAutoReload creates a Server with the live-reload conveniences
// enabled: the listener is taken from the process supervisor if one was
// handed down, falling back to a fresh bind on addr, and the interrupt
// shutdown signal is pre-armed.
func NewWithAutoReload(addr string) (*Server, error) {
	ln, err := GetOrBindListener(addr)
	if err != nil {
		return nil, err
	}

	return New(ln).WithInterruptShutdown(), nil
}

// Router returns the routing table for registering routes.
func (s *Server) Router() *mux.App {
	return s.router
}

// WithRouter replaces the routing table.
func (s *Server) WithRouter(app *mux.App) *Server {
	s.router = app
	return s
}

// Options returns the current server options.
func (s *Server) Options() Options {
	return s.opts
}

// WithOptions replaces the server options wholesale.
func (s *Server) WithOptions(opts Options) *Server {
	s.opts = opts
	return s
}

// WithOptionsFromEnv replaces the server options with ones read from the
// environment. See OptionsFromEnv.
func (s *Server) WithOptionsFromEnv() (*Server, error) {
	opts, err := optionsFromEnv(s.logger)
	if err != nil {
		return s, err
	}

	s.opts = opts

	return s, nil
}

// WithLogger sets the logger used for lifecycle events.
func (s *Server) WithLogger(log *slog.Logger) *Server {
	s.logger = log
	return s
}

// WithGracefulShutdown arms signal as the graceful shutdown trigger: when it
// becomes readable (or is closed), the server stops accepting connections
// and drains in-flight requests. At most one signal may be armed; a later
// call replaces an earlier one.
func (s *Server) WithGracefulShutdown(signal <-chan struct{}) *Server {
	s.shutdown = signal
	return s
}

// WithInterruptShutdown arms SIGINT/SIGTERM as the graceful shutdown
// trigger.
func (s *Server) WithInterruptShutdown() *Server {
	shutdown := make(chan struct{})
	quit := make(chan struct{})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	s.logger.Info("listening for interrupt signal for graceful shutdown")

	go func() {
		defer signal.Stop(sigCh)

		select {
		case <-sigCh:
			close(shutdown)
		case <-quit: // Serve returned without a signal, stop watching.
		}
	}()

	s.stopNotify = func() { close(quit) }

	return s.WithGracefulShutdown(shutdown)
}

// Serve resolves the effective state and runs the accept loop, racing it
// against the shutdown signal if one is armed.
//
// With a signal armed, Serve returns nil after the signal fires and all
// in-flight requests have completed; no connection is accepted after the
// signal. Without one, Serve only returns on accept-loop failure. Either
// way the error is terminal: the server performs no retries, and restart
// policy belongs to the caller.
//
// Serve consumes the Server. A second call returns ErrAlreadyServed.
func (s *Server) Serve() error {
	if !s.consumed.CompareAndSwap(false, true) {
		return ErrAlreadyServed
	}

	if s.stopNotify != nil {
		defer s.stopNotify()
	}

	if s.listener == nil {
		return &LocalAddrError{Err: errors.New("no listener")}
	}

	localAddr := s.listener.Addr()
	if localAddr == nil {
		return &LocalAddrError{Err: errors.New("listener reported no local address")}
	}

	s.logger.Info("server listening", "addr", localAddr.String())

	state := NewState(s.opts, localAddr)

	s.logger.Info("now serving", "base_url", state.BaseURL.String())

	srv := &http.Server{Handler: withState(s.router, state)}

	serveErrs := make(chan error, 1)
	go func() {
		serveErrs <- srv.Serve(s.listener)
	}()

	if s.shutdown == nil {
		// srv.Serve never returns nil; the accept loop runs until it fails.
		return &ServeError{Err: <-serveErrs}
	}

	select {
	case err := <-serveErrs:
		return &ServeError{Err: err}

	case <-s.shutdown:
		s.logger.Info("shutdown signal received, draining")

		if err := srv.Shutdown(context.Background()); err != nil {
			return &ServeError{Err: err}
		}

		s.logger.Info("shutdown complete")

		return nil
	}
}

// withState injects the resolved state into every request context before
// the router sees it.
func withState(next http.Handler, state *State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), state)))
	})
}
