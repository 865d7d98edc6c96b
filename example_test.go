package htmxssr_test

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/adamwoolhether/htmxssr"
)

func ExampleIsHTMX() {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(htmxssr.HeaderRequest, "true")

	fmt.Println(htmxssr.IsHTMX(r))
	// Output: true
}

func ExampleRespondPartial() {
	tmpl := template.Must(template.New("").Parse(`
{{define "page"}}<html><body>{{template "list" .}}</body></html>{{end}}
{{define "list"}}<ul><li>{{.}}</li></ul>{{end}}`))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/items", nil)
	r.Header.Set(htmxssr.HeaderRequest, "true")

	if err := htmxssr.RespondPartial(context.Background(), w, r, tmpl, "page", "list", "first"); err != nil {
		fmt.Println("error:", err)
		return
	}

	os.Stdout.Write(w.Body.Bytes())
	// Output: <ul><li>first</li></ul>
}

func ExampleHXRedirect() {
	w := httptest.NewRecorder()

	htmxssr.HXRedirect(w, "/login")

	fmt.Println(w.Header().Get(htmxssr.HeaderHXRedirect))
	// Output: /login
}
