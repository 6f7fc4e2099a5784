package runner

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// InvalidURLError is returned for an ad-hoc URL that cannot be sent.
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	if e.URL == "" {
		return "invalid URL: " + e.Reason
	}
	return fmt.Sprintf("invalid URL %q: %s", e.URL, e.Reason)
}

func (e *InvalidURLError) Hint() string {
	return "Example: wave get https://api.example.com/users"
}

// NormalizeURL prefixes http:// when no scheme is given and checks that the
// host looks like a domain, localhost or an IP address.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &InvalidURLError{Reason: "URL is empty"}
	}

	full := raw
	if !hasScheme(raw) {
		full = "http://" + raw
	}

	u, err := url.Parse(full)
	if err != nil {
		return "", &InvalidURLError{URL: raw, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &InvalidURLError{URL: raw, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}

	host := u.Hostname()
	switch {
	case host == "":
		return "", &InvalidURLError{URL: raw, Reason: "missing host"}
	case host == "localhost", net.ParseIP(host) != nil, strings.Contains(host, "."):
		return full, nil
	default:
		return "", &InvalidURLError{URL: raw, Reason: fmt.Sprintf("host %q is not a domain, localhost or an IP address", host)}
	}
}

func hasScheme(raw string) bool {
	i := strings.Index(raw, "://")
	return i > 0 && !strings.ContainsAny(raw[:i], "/?#")
}
