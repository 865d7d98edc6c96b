package mux_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/adamwoolhether/htmxssr/mux"
)

func ExampleNew() {
	app := mux.New()
	app.Get("/hello/{name}", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		fmt.Fprintf(w, "hello %s", r.PathValue("name"))
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/hello/gopher", nil)
	app.ServeHTTP(w, r)

	fmt.Println(w.Body.String())
	// Output: hello gopher
}

func ExampleApp_Mount() {
	app := mux.New()

	api := app.Mount("/api")
	api.Get("/items", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		fmt.Fprint(w, "items")
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	app.ServeHTTP(w, r)

	fmt.Println(w.Body.String())
	// Output: items
}
