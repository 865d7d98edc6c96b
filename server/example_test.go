package server_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/adamwoolhether/htmxssr/server"
)

func ExampleNew() {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Println("listen error:", err)
		return
	}
	defer ln.Close()

	srv := server.New(ln).WithInterruptShutdown()
	srv.Router().Get("/", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		fmt.Fprintln(w, "hello")
		return nil
	})

	_ = srv // srv.Serve() blocks until signal

	fmt.Println("server configured")
	// Output: server configured
}

func ExampleNewState() {
	addr, _ := net.ResolveTCPAddr("tcp", "127.0.0.1:3000")

	state := server.NewState(server.Options{}, addr)

	fmt.Println(state.BaseURL)
	// Output: http://127.0.0.1:3000
}

func ExampleState_AbsURL() {
	base, _ := url.Parse("https://app.example.com")

	state := server.NewState(server.Options{BaseURL: base}, nil)

	fmt.Println(state.AbsURL("/users/42"))
	// Output: https://app.example.com/users/42
}
