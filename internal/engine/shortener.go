package engine

import "webguard/pkg/domain"

// DomainSet is an immutable set of normalized hostnames.
type DomainSet struct {
	hosts map[string]struct{}
}

// NewDomainSet normalizes the given hostnames into a set.
func NewDomainSet(hosts ...string) DomainSet {
	set := DomainSet{hosts: make(map[string]struct{}, len(hosts))}
	for _, h := range hosts {
		if n := NormalizeHostname(h); n != "" {
			set.hosts[n] = struct{}{}
		}
	}

	return set
}

// Contains reports whether the normalized host is in the set.
func (s DomainSet) Contains(host string) bool {
	n := NormalizeHostname(host)
	if n == "" {
		return false
	}
	_, ok := s.hosts[n]

	return ok
}

// Len returns the number of hostnames in the set.
func (s DomainSet) Len() int { return len(s.hosts) }

// DefaultShortenerDomains lists well-known URL shortening services.
func DefaultShortenerDomains() []string {
	return []string{
		"bit.ly", "bitly.com", "tinyurl.com", "goo.gl", "t.co", "ow.ly", "is.gd",
		"buff.ly", "adf.ly", "bit.do", "cutt.ly", "shorturl.at", "rebrand.ly",
		"tiny.cc", "rb.gy", "t.ly", "v.gd", "s.id", "shorte.st", "lnkd.in",
		"soo.gd", "clck.ru", "qr.ae", "bl.ink", "short.io", "tr.im", "x.co",
		"youtu.be", "amzn.to", "trib.al", "dlvr.it",
	}
}

// ShortenerMatcher flags hostnames belonging to URL shortening services.
type ShortenerMatcher struct {
	domains DomainSet
}

// NewShortenerMatcher creates a matcher over the given domain set.
func NewShortenerMatcher(domains DomainSet) ShortenerMatcher {
	return ShortenerMatcher{domains: domains}
}

// DefaultShortenerMatcher uses DefaultShortenerDomains.
func DefaultShortenerMatcher() ShortenerMatcher {
	return NewShortenerMatcher(NewDomainSet(DefaultShortenerDomains()...))
}

// IsShortener reports whether hostname exactly equals a known shortener once
// normalized. "www.bit.ly" matches, "notbit.ly" does not. Malformed input is
// never a shortener.
func (m ShortenerMatcher) IsShortener(hostname string) bool {
	return m.domains.Contains(hostOf(hostname))
}

// FindShortenedLinks returns the links pointing to a shortener, in input order
// and without deduplication. A link with an empty Hostname is matched on the
// host of its URL.
func (m ShortenerMatcher) FindShortenedLinks(links []domain.Link) []domain.Link {
	var out []domain.Link
	for _, l := range links {
		host := l.Hostname
		if host == "" {
			host = l.URL
		}
		if m.IsShortener(host) {
			out = append(out, l)
		}
	}

	return out
}
