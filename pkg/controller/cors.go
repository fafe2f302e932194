package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
)

const (
	corsAllowedHeaders = "Authorization, Content-Type, X-Requested-With, X-Request-Id, Cache-Control"
	corsAllowedMethods = "GET, POST, PUT, OPTIONS"
	corsMaxAge         = 3600
)

// CORS matches request origins against a list of glob patterns such as
// "chrome-extension://*" or "http://localhost:*".
type CORS struct {
	patterns []glob.Glob
}

// NewCORS compiles the allowed origin patterns. A "*" pattern allows any origin.
func NewCORS(allowedOrigins []string) (*CORS, error) {
	c := &CORS{}
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		g, err := glob.Compile(o)
		if err != nil {
			return nil, fmt.Errorf("could not compile allowed origin %q: %w", o, err)
		}
		c.patterns = append(c.patterns, g)
	}

	return c, nil
}

// Allowed reports whether origin matches one of the patterns.
func (c *CORS) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, p := range c.patterns {
		if p.Match(origin) {
			return true
		}
	}

	return false
}

// Handler returns a middleware that reflects allowed origins in the CORS
// response headers and short-circuits OPTIONS preflight requests with 204 No
// Content. Preflights from other origins are rejected with 403.
func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := c.Allowed(origin)

		w.Header().Add("Vary", "Origin")
		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		// handle preflight requests quickly
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			if !allowed {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "origin not allowed")

				return
			}
			w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}
