package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"webguard/internal/api"
	"webguard/internal/api/handler/v1handler"
	"webguard/pkg/logger"

	mockinspector "webguard/internal/inspector/mock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func publicKeyPEM(t *testing.T) string {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func newTestServer(t *testing.T, deps api.Deps) *httptest.Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	deps.Inspector = mockinspector.NewMockInspector(gomock.NewController(t))

	srv, err := api.NewServer(context.Background(), deps, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: publicKeyPEM(t)},
		MaxBodyBytes:      1024,
		MetricsPath:       "/metrics",
		AllowedOrigins:    []string{"chrome-extension://*"},
		Registerer:        reg,
		Gatherer:          reg,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	res, err := http.Get(url) //nolint: noctx
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func TestServer_Healthz(t *testing.T) {
	ts := newTestServer(t, api.Deps{
		Redis: api.PingerFunc(func(context.Context) error { return nil }),
		Storage: api.PingerFunc(func(context.Context) error {
			return errors.New("connection refused")
		}),
	})

	res, body := get(t, ts.URL+"/healthz")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))

	var health map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	require.Equal(t, "healthy", health["status"])
	require.Equal(t, "1.0.0", health["version"])
	require.Equal(t, "connected", health["redis"])
	require.Equal(t, "error: connection refused", health["database"])
	require.NotEmpty(t, health["timestamp"])
}

func TestServer_HealthzWithoutStores(t *testing.T) {
	ts := newTestServer(t, api.Deps{})

	_, body := get(t, ts.URL+"/healthz")
	require.Contains(t, body, `"redis":"not configured"`)
}

func TestServer_Specs(t *testing.T) {
	ts := newTestServer(t, api.Deps{})

	res, body := get(t, ts.URL+"/specs/v1.yaml")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, body, "openapi: 3.0.3")
	require.Contains(t, body, "/settings/events:")
}

func TestServer_Docs(t *testing.T) {
	ts := newTestServer(t, api.Deps{})

	res, body := get(t, ts.URL+"/v1/docs/")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "Webguard API")
}

func TestServer_MetricsIncludeHTTPRequests(t *testing.T) {
	ts := newTestServer(t, api.Deps{})

	get(t, ts.URL+"/healthz")
	res, body := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "http_server_requests")
	require.Contains(t, body, `http_route="/healthz"`)
}

func TestServer_V1RequiresToken(t *testing.T) {
	ts := newTestServer(t, api.Deps{})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/settings", nil) //nolint: noctx
	require.NoError(t, err)
	req.Header.Set("User-Agent", "Mozilla/5.0 Chrome/126.0")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestServer_CORSPreflight(t *testing.T) {
	ts := newTestServer(t, api.Deps{})

	for _, tc := range []struct {
		origin string
		status int
	}{
		{"chrome-extension://abcdef", http.StatusNoContent},
		{"https://evil.example", http.StatusForbidden},
	} {
		t.Run(tc.origin, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, ts.URL+"/v1/scan", nil) //nolint: noctx
			require.NoError(t, err)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			res, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			require.Equal(t, tc.status, res.StatusCode)
		})
	}
}

func TestServer_BodyLimit(t *testing.T) {
	ts := newTestServer(t, api.Deps{})

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/scan", //nolint: noctx
		io.NopCloser(io.LimitReader(zeroReader{}, 4096)))
	require.NoError(t, err)
	req.ContentLength = 4096
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)
}

func TestServer_Pprof(t *testing.T) {
	ts := newTestServer(t, api.Deps{})

	res, _ := get(t, ts.URL+"/debug/pprof/cmdline")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'a'
	}

	return len(p), nil
}
