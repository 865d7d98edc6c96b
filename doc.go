// Package htmxssr provides request and response helpers for building
// server-side-rendered applications with htmx on top of the server and mux
// packages: HTML/JSON responses, htmx protocol headers, request decoding,
// and validation.
package htmxssr
