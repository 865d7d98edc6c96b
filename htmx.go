package htmxssr

import (
	"context"
	"html/template"
	"net/http"
)

// Request and response headers defined by the htmx protocol.
const (
	HeaderRequest    = "HX-Request"
	HeaderBoosted    = "HX-Boosted"
	HeaderTarget     = "HX-Target"
	HeaderTriggerID  = "HX-Trigger"
	HeaderCurrentURL = "HX-Current-URL"

	HeaderHXRedirect = "HX-Redirect"
	HeaderHXRefresh  = "HX-Refresh"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXPushURL  = "HX-Push-Url"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// IsBoosted reports whether the request came from an hx-boost element.
// Boosted requests expect a full page, not a fragment.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderBoosted) == "true"
}

// TargetID returns the id of the element htmx will swap the response into,
// or "" if the request did not come from htmx.
func TargetID(r *http.Request) string {
	return r.Header.Get(HeaderTarget)
}

// TriggerID returns the id of the element that triggered the request.
func TriggerID(r *http.Request) string {
	return r.Header.Get(HeaderTriggerID)
}

// CurrentURL returns the browser URL the request was made from.
func CurrentURL(r *http.Request) string {
	return r.Header.Get(HeaderCurrentURL)
}

// HXRedirect instructs htmx to do a client-side redirect to the given URL.
// Use this instead of Redirect for htmx requests: a 3xx response would be
// followed transparently by the browser's fetch and swapped in place.
func HXRedirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderHXRedirect, url)
}

// HXRefresh instructs htmx to do a full client-side page refresh.
func HXRefresh(w http.ResponseWriter) {
	w.Header().Set(HeaderHXRefresh, "true")
}

// HXRetarget overrides the element the response will be swapped into with
// the given CSS selector.
func HXRetarget(w http.ResponseWriter, selector string) {
	w.Header().Set(HeaderHXRetarget, selector)
}

// HXReswap overrides how the response will be swapped, e.g. "outerHTML".
func HXReswap(w http.ResponseWriter, strategy string) {
	w.Header().Set(HeaderHXReswap, strategy)
}

// HXPushURL pushes the given URL into the browser history.
func HXPushURL(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderHXPushURL, url)
}

// RespondPartial renders the fragment template for htmx requests and the
// full page template otherwise, so a single handler serves both direct
// navigation and hx-get swaps.
func RespondPartial(ctx context.Context, w http.ResponseWriter, r *http.Request, tmpl *template.Template, page, fragment string, data any) error {
	name := page
	if IsHTMX(r) && !IsBoosted(r) {
		name = fragment
	}

	return RespondHTML(ctx, w, http.StatusOK, tmpl, name, data)
}
