package engine

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// canonicalHost lowercases host, drops a trailing dot and converts
// internationalized names to their ASCII form. Inputs the IDNA profile rejects
// (underscores, for instance) are only lowercased.
func canonicalHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return ""
	}

	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		return ascii
	}

	return strings.ToLower(host)
}

// NormalizeHostname is the canonical form used for shortener comparisons:
// canonicalHost plus a single leading "www." removed.
func NormalizeHostname(host string) string {
	return strings.TrimPrefix(canonicalHost(host), "www.")
}

// hostOf extracts the host of raw, which may be a full URL or a bare hostname
// (optionally with a port and a path). It returns "" when nothing usable is
// found.
func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "//") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}

		return canonicalHost(u.Hostname())
	}

	if i := strings.IndexAny(raw, "/?#"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || strings.ContainsAny(raw, "@ ") {
		return ""
	}

	if h, _, err := net.SplitHostPort(raw); err == nil {
		return canonicalHost(h)
	}

	return canonicalHost(raw)
}

// authorityHost returns the host of a URL authority that may be followed by a
// path, query or fragment. Userinfo and port are dropped.
func authorityHost(authority string) string {
	if i := strings.IndexAny(authority, "/?#"); i >= 0 {
		authority = authority[:i]
	}
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}

	if strings.HasPrefix(authority, "[") {
		end := strings.Index(authority, "]")
		if end < 0 {
			return ""
		}

		return canonicalHost(authority[1:end])
	}

	if i := strings.Index(authority, ":"); i >= 0 {
		authority = authority[:i]
	}
	if strings.ContainsAny(authority, " %") {
		return ""
	}

	return canonicalHost(authority)
}
