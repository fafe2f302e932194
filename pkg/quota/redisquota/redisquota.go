// Package redisquota implements quota.Limiter with one Redis counter per user
// and UTC day.
package redisquota

import (
	"context"
	"errors"
	"fmt"
	"time"
	"webguard/pkg/domain"
	"webguard/pkg/logger"
	"webguard/pkg/quota"
	"webguard/pkg/serrors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyTTL bounds how long a day's counter survives after its first increment.
const keyTTL = 24 * time.Hour

// Limiter is a Redis backed quota.Limiter. Counters live under
// "user:<id>:scans:<YYYY-MM-DD>". Redis failures are logged and the lookup is
// allowed.
type Limiter struct {
	client redis.Cmdable
	limit  int
	now    func() time.Time
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source used to pick the day bucket.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a Limiter allowing dailyLimit lookups per user and day. A limit
// of zero or less disables enforcement; lookups are still counted.
func New(client redis.Cmdable, dailyLimit int, opts ...Option) *Limiter {
	l := &Limiter{client: client, limit: dailyLimit, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Key returns the counter key for userID on day (YYYY-MM-DD).
func Key(userID domain.UserID, day string) string {
	return fmt.Sprintf("user:%s:scans:%s", userID, day)
}

// Consume increments today's counter and reports serrors.ErrRateLimited when
// the result exceeds the daily limit. A rejected lookup is given back, so the
// stored counter never goes past the limit.
func (l *Limiter) Consume(ctx context.Context, userID domain.UserID) (domain.QuotaUsage, error) {
	now := l.now()
	key := Key(userID, quota.Day(now))
	resetAt := quota.NextReset(now)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, keyTTL)

		return nil
	})
	if err != nil {
		logger.Warn(ctx, "quota store unavailable, allowing lookup", zap.String("key", key), zap.Error(err))

		return domain.NewQuotaUsage(0, l.limit, resetAt), nil
	}

	count := int(incr.Val())
	usage := domain.NewQuotaUsage(count, l.limit, resetAt)
	if l.limit > 0 && count > l.limit {
		if err := l.client.Decr(ctx, key).Err(); err != nil {
			logger.Warn(ctx, "could not release rejected lookup", zap.String("key", key), zap.Error(err))
		}

		return usage, serrors.With(serrors.ErrRateLimited,
			"daily scan limit of %d reached, resets at %s", l.limit, resetAt.Format(time.RFC3339))
	}

	return usage, nil
}

// Usage reads today's counter. A missing key means no lookups yet.
func (l *Limiter) Usage(ctx context.Context, userID domain.UserID) (domain.QuotaUsage, error) {
	now := l.now()
	key := Key(userID, quota.Day(now))
	resetAt := quota.NextReset(now)

	count, err := l.client.Get(ctx, key).Int()
	switch {
	case errors.Is(err, redis.Nil):
		count = 0
	case err != nil:
		logger.Warn(ctx, "quota store unavailable, reporting empty usage", zap.String("key", key), zap.Error(err))
		count = 0
	}

	return domain.NewQuotaUsage(count, l.limit, resetAt), nil
}

// Ensure Limiter conforms to the quota.Limiter interface at compile time.
var _ quota.Limiter = (*Limiter)(nil)
