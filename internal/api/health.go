package api

import (
	"context"
	"net/http"
	"time"
	"webguard/pkg/logger"

	"github.com/go-faster/jx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	serviceName    = "Secure Website Scanner API"
	serviceVersion = "1.0.0"
	pingTimeout    = 2 * time.Second
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// RedisPinger adapts a redis client, whose Ping returns a command, to Pinger.
func RedisPinger(client redis.UniversalClient) Pinger {
	return PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

type healthHandler struct {
	redis    Pinger
	database Pinger
	now      func() time.Time
}

func newHealthHandler(rdb, db Pinger) *healthHandler {
	return &healthHandler{redis: rdb, database: db, now: time.Now}
}

// ServeHTTP always answers 200: the body carries the state of each
// dependency so that a degraded store does not take the API out of rotation.
func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.Obj(func(e *jx.Encoder) {
		e.Field("status", func(e *jx.Encoder) { e.Str("healthy") })
		e.Field("service", func(e *jx.Encoder) { e.Str(serviceName) })
		e.Field("version", func(e *jx.Encoder) { e.Str(serviceVersion) })
		e.Field("timestamp", func(e *jx.Encoder) { e.Str(h.now().UTC().Format(time.RFC3339)) })
		e.Field("redis", func(e *jx.Encoder) { e.Str(h.check(r.Context(), "redis", h.redis)) })
		e.Field("database", func(e *jx.Encoder) { e.Str(h.check(r.Context(), "database", h.database)) })
	})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(e.Bytes())
}

func (h *healthHandler) check(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "not configured"
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		logger.Warn(ctx, "health check failed", zap.String("dependency", name), zap.Error(err))

		return "error: " + err.Error()
	}

	return "connected"
}
