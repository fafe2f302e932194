package inspector

import (
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"path"
	"sort"
	"strings"
	"unicode"
	"webguard/pkg/serrors"
)

// MaxURLLength is the longest URL accepted for a reputation check.
const MaxURLLength = 2048

var internalSchemes = []string{"chrome", "chrome-extension", "file", "about", "edge", "moz-extension"} //nolint: gochecknoglobals

// ValidateURL cleans up a URL typed or captured by the add-on and returns its
// normalized form. A missing scheme defaults to https. Internal targets such as
// browser pages, localhost and private or loopback addresses are rejected with
// a bad request error.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", serrors.With(serrors.ErrBadRequest, "URL cannot be empty")
	}

	if i := strings.Index(s, "://"); i > 0 && isScheme(s[:i]) {
		scheme := strings.ToLower(s[:i])
		switch {
		case scheme == "http" || scheme == "https":
		case isInternalScheme(scheme):
			return "", serrors.With(serrors.ErrBadRequest, "cannot scan internal/private URLs")
		default:
			return "", serrors.With(serrors.ErrBadRequest, "URL must use HTTP or HTTPS protocol")
		}
	} else {
		s = "https://" + s
	}

	if len(s) > MaxURLLength {
		return "", serrors.With(serrors.ErrBadRequest, "URL is too long (max %d characters)", MaxURLLength)
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", serrors.With(serrors.ErrBadRequest, "URL cannot contain spaces")
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid URL format")
	}
	if u.Hostname() == "" {
		return "", serrors.With(serrors.ErrBadRequest, "URL must include a host")
	}
	if isInternalHost(u.Hostname()) {
		return "", serrors.With(serrors.ErrBadRequest, "cannot scan internal/private URLs")
	}

	normalized, err := NormalizeURL(s)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid URL format")
	}

	return normalized, nil
}

func isScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}

	return s != ""
}

func isInternalScheme(scheme string) bool {
	for _, s := range internalSchemes {
		if scheme == s {
			return true
		}
	}

	return false
}

func isInternalHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() || addr.IsUnspecified()
}

// NormalizeURL returns a canonical representation of a URL string so that the
// same page is always looked up under the same key:
//   - Lower-case the scheme and host
//   - Ensure path is present; empty path becomes "/"
//   - Clean the path (resolve dot-segments, collapse duplicate slashes)
//   - Remove a trailing slash (except for the root path "/")
//   - Drop default ports (http:80, https:443), keep non-default ports
//   - Sort query parameters by key and by value for stable ordering
//   - Remove the fragment
//
// If the input cannot be parsed as a URL, an error is returned.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)

	if u.Path == "" {
		u.Path = "/"
	}

	// clean path (removes dot-segments, duplicate slashes)
	cleaned := path.Clean(u.Path)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	u.Path = cleaned
	u.RawPath = ""

	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimRight(u.Path, "/")
	}

	host := strings.ToLower(u.Host)
	port := ""
	if ph, pp, err := net.SplitHostPort(host); err == nil {
		host, port = ph, pp
	} // else: host without explicit port or IPv6 without port
	switch {
	case port == "":
		u.Host = host
	case (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443"):
		u.Host = bracketIPv6(host)
	default:
		u.Host = net.JoinHostPort(host, port)
	}

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			sort.Strings(q[k])
		}
		// url.Values.Encode() sorts keys lexicographically
		u.RawQuery = q.Encode()
	}

	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), nil
}

func bracketIPv6(host string) string {
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}

	return host
}
