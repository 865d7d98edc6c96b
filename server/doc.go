// Package server manages the lifecycle of an htmxssr server: a pre-bound
// listener, a routing table, an optional graceful-shutdown trigger, and the
// base URL the server believes it is reachable at.
//
// The base URL is resolved once, when [Server.Serve] is called: an explicit
// [Options.BaseURL] wins; otherwise it is derived from the listener's actual
// local address. The resolved [State] is immutable and shared read-only with
// every request via its context.
//
// Basic usage:
//
//	ln, err := net.Listen("tcp", ":3000")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	srv := server.New(ln).WithInterruptShutdown()
//	srv.Router().Get("/", home)
//
//	if err := srv.Serve(); err != nil {
//		log.Fatal(err)
//	}
//
// During development, NewWithAutoReload picks up a listener handed down by a
// process supervisor (listenfd convention) so the socket survives restarts:
//
//	srv, err := server.NewWithAutoReload(":3000")
package server
