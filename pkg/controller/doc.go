// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithSecurityHeaders: Sets hardening headers (CSP, HSTS, frame and sniffing protection).
//   - CORS.Handler: Reflects allowed origins matched by glob patterns and handles OPTIONS preflight.
//   - WithUserAgentFilter: Rejects scanners, crawlers and missing User-Agent values.
//   - WithBodyLimit: Caps request body size.
//   - HTTPMetrics.Handler: Records per-route request counts and latencies through OpenTelemetry.
//   - WithTimeout: Bounds request handling time.
//
// Provided helpers:
//   - PprofRouter: Returns a chi router exposing net/http/pprof handlers.
//   - WriteError: Writes the JSON error body shared by all endpoints.
package controller
