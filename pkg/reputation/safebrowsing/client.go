// Package safebrowsing provides a reputation.Source backed by the Google Safe
// Browsing v4 Lookup API.
package safebrowsing

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"webguard/pkg/domain"
	"webguard/pkg/reputation"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

const (
	// DefaultEndpoint is the threatMatches:find endpoint.
	DefaultEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"
	// DefaultClientID identifies this service to the API.
	DefaultClientID = "secure-website-scanner"
	// DefaultClientVersion is sent along with DefaultClientID.
	DefaultClientVersion = "1.0.0"
	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// ErrNoAPIKey is reported when the client has no API key configured.
var ErrNoAPIKey = errors.New("reputation API key is not configured")

// Options configure a Client. Zero values fall back to the package defaults.
type Options struct {
	APIKey        string
	Endpoint      string
	ClientID      string
	ClientVersion string
	Timeout       time.Duration
}

// Client queries Safe Browsing once per lookup: no caching, no coalescing.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	opts       Options
}

// New constructs a Client that uses httpClient to reach the API.
func New(httpClient *http.Client, opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.ClientID == "" {
		opts.ClientID = DefaultClientID
	}
	if opts.ClientVersion == "" {
		opts.ClientVersion = DefaultClientVersion
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Client{httpClient: httpClient, opts: opts}
}

// Lookup checks target against the Safe Browsing lists. Missing credentials,
// transport errors, timeouts, non-200 responses and malformed bodies all yield
// a LookupFailed outcome.
func (c *Client) Lookup(ctx context.Context, target string) domain.LookupOutcome {
	matches, err := c.find(ctx, target)
	if err != nil {
		return domain.LookupFailure(err)
	}
	if len(matches) == 0 {
		return domain.NoThreat()
	}

	return domain.ThreatFound(matches...)
}

func (c *Client) find(ctx context.Context, target string) ([]domain.ThreatMatch, error) {
	if c.opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	encodeFindRequest(e, c.opts.ClientID, c.opts.ClientVersion, target)

	endpoint, err := url.Parse(c.opts.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "parse endpoint")
	}
	q := endpoint.Query()
	q.Set("key", c.opts.APIKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(e.Bytes()))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, which carries the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.New("lookup timed out")
		}

		return nil, errors.Wrap(err, "send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("reputation API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return decodeFindResponse(b)
}

// Ensure Client conforms to the reputation.Source interface at compile time.
var _ reputation.Source = (*Client)(nil)
