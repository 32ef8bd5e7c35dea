package linktable

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// InvalidURLError is returned when an edited value is not an absolute URL.
type InvalidURLError struct {
	Raw   string
	Cause error
}

func (e *InvalidURLError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid URL %q: %v", e.Raw, e.Cause)
	}
	return fmt.Sprintf("invalid URL %q", e.Raw)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Cause
}

// ParseURL parses raw as an absolute URL and normalizes it the way a browser
// would print its href: scheme and host are lowercased, a default port is
// dropped and a bare host gets a "/" path. Ports above 65535 are rejected.
func ParseURL(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, &InvalidURLError{Raw: raw, Cause: fmt.Errorf("empty value")}
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, &InvalidURLError{Raw: raw, Cause: err}
	}
	if u.Scheme == "" {
		return nil, &InvalidURLError{Raw: raw, Cause: fmt.Errorf("missing scheme")}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if isSpecialScheme(u.Scheme) {
		if u.Host == "" {
			return nil, &InvalidURLError{Raw: raw, Cause: fmt.Errorf("missing host")}
		}
		u.Host = strings.ToLower(u.Host)
		if err := normalizePort(u); err != nil {
			return nil, &InvalidURLError{Raw: raw, Cause: err}
		}
		if u.Path == "" && u.RawPath == "" {
			u.Path = "/"
		}
	} else if u.Opaque == "" && u.Host == "" && u.Path == "" {
		return nil, &InvalidURLError{Raw: raw, Cause: fmt.Errorf("missing location")}
	}

	return u, nil
}

// NormalizeURL is ParseURL returning the normalized string form.
func NormalizeURL(raw string) (string, error) {
	u, err := ParseURL(raw)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
	"ftp":   21,
}

// normalizePort validates u's port and rewrites it in canonical form.
func normalizePort(u *url.URL) error {
	port := u.Port()
	if port == "" {
		u.Host = strings.TrimSuffix(u.Host, ":")
		return nil
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("port %s out of range", port)
	}

	host := strings.TrimSuffix(u.Host, ":"+port)
	if n != defaultPorts[u.Scheme] {
		host += ":" + strconv.Itoa(n)
	}
	u.Host = host
	return nil
}

func isSpecialScheme(scheme string) bool {
	switch scheme {
	case "http", "https", "ws", "wss", "ftp":
		return true
	}
	return false
}
