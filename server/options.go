package server

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"unicode/utf8"
)

// BaseURLVar is the environment variable read by OptionsFromEnv for the
// server's base URL.
const BaseURLVar = "HTMX_SSR_BASE_URL"

// Options holds server configuration. The zero value is valid. Once passed
// to Serve the options are treated as immutable for that run.
type Options struct {
	// BaseURL is the base URL of the server as seen from the outside.
	//
	// If the server runs behind a reverse proxy, set this to the proxy's
	// externally visible URL. When nil, the base URL is derived from the
	// listener's own local address at serve time.
	BaseURL *url.URL
}

// OptionsFromEnv builds Options from the environment.
//
// BaseURLVar unset, or set to the empty string, leaves Options.BaseURL nil.
// Any other value must parse as an absolute URL.
func OptionsFromEnv() (Options, error) {
	return optionsFromEnv(slog.Default())
}

func optionsFromEnv(log *slog.Logger) (Options, error) {
	var opts Options

	raw, ok, err := lookupEnv(BaseURLVar)
	if err != nil {
		return opts, err
	}

	if !ok {
		log.Warn("base URL will be determined from the TCP listener address, this may not be what you want", "unset_var", BaseURLVar)
		return opts, nil
	}

	base, err := parseBaseURL(raw)
	if err != nil {
		return opts, &BaseURLEnvError{Var: BaseURLVar, Raw: raw, Err: err}
	}

	log.Info("using base URL from the environment", "var", BaseURLVar, "base_url", base.String())

	opts.BaseURL = base

	return opts, nil
}

// lookupEnv is the single seam through which the ambient environment is
// read. Absent and empty values are both reported as not set.
func lookupEnv(name string) (string, bool, error) {
	val, ok := os.LookupEnv(name)
	if !ok || val == "" {
		return "", false, nil
	}

	if !utf8.ValidString(val) {
		return "", false, &NotUnicodeError{Var: name}
	}

	return val, true, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("URL %q is not absolute", raw)
	}

	return u, nil
}
