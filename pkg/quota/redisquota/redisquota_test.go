package redisquota_test

import (
	"context"
	"fmt"
	"testing"
	"time"
	"webguard/pkg/domain"
	"webguard/pkg/quota/redisquota"
	"webguard/pkg/serrors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379"},
			WaitingFor:   wait.ForListeningPort("6379"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%d", host, port.Int())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	return client
}

func fixedClock(t time.Time) redisquota.Option {
	return redisquota.WithClock(func() time.Time { return t })
}

func TestLimiter(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	day := time.Date(2025, 5, 17, 15, 4, 5, 0, time.UTC)
	reset := time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC)

	t.Run("consumes up to the limit", func(t *testing.T) {
		userID := domain.UserID(uuid.New())
		l := redisquota.New(client, 3, fixedClock(day))

		usage, err := l.Usage(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, domain.QuotaUsage{DailyLimit: 3, Remaining: 3, ResetAt: reset}, usage)

		for i := 1; i <= 3; i++ {
			usage, err = l.Consume(ctx, userID)
			require.NoError(t, err)
			require.Equal(t, i, usage.ScansToday)
			require.Equal(t, 3-i, usage.Remaining)
		}

		usage, err = l.Consume(ctx, userID)
		require.ErrorIs(t, err, serrors.ErrRateLimited)
		require.Equal(t, 3, usage.ScansToday)
		require.Equal(t, 0, usage.Remaining)
		require.InDelta(t, 100.0, usage.PercentageUsed, 0.001)

		usage, err = l.Usage(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 3, usage.ScansToday)

		ttl, err := client.TTL(ctx, redisquota.Key(userID, "2025-05-17")).Result()
		require.NoError(t, err)
		require.Greater(t, ttl, time.Duration(0))
		require.LessOrEqual(t, ttl, 24*time.Hour)
	})

	t.Run("rejected lookups are not counted", func(t *testing.T) {
		userID := domain.UserID(uuid.New())
		l := redisquota.New(client, 2, fixedClock(day))

		for range 2 {
			_, err := l.Consume(ctx, userID)
			require.NoError(t, err)
		}
		for range 3 {
			_, err := l.Consume(ctx, userID)
			require.ErrorIs(t, err, serrors.ErrRateLimited)
		}

		raw, err := client.Get(ctx, redisquota.Key(userID, "2025-05-17")).Int()
		require.NoError(t, err)
		require.Equal(t, 2, raw)
	})

	t.Run("new day starts a new counter", func(t *testing.T) {
		userID := domain.UserID(uuid.New())

		_, err := redisquota.New(client, 1, fixedClock(day)).Consume(ctx, userID)
		require.NoError(t, err)
		_, err = redisquota.New(client, 1, fixedClock(day)).Consume(ctx, userID)
		require.ErrorIs(t, err, serrors.ErrRateLimited)

		usage, err := redisquota.New(client, 1, fixedClock(day.Add(24*time.Hour))).Consume(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 1, usage.ScansToday)
	})

	t.Run("users are independent", func(t *testing.T) {
		l := redisquota.New(client, 1, fixedClock(day))

		_, err := l.Consume(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		_, err = l.Consume(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
	})

	t.Run("non-positive limit disables enforcement", func(t *testing.T) {
		userID := domain.UserID(uuid.New())
		l := redisquota.New(client, 0, fixedClock(day))

		for range 5 {
			_, err := l.Consume(ctx, userID)
			require.NoError(t, err)
		}

		usage, err := l.Usage(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 5, usage.ScansToday)
		require.Equal(t, 0, usage.Remaining)
		require.Zero(t, usage.PercentageUsed)
	})
}

func TestLimiter_failOpen(t *testing.T) {
	// nothing listens on this port
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	l := redisquota.New(client, 1)
	userID := domain.UserID(uuid.New())

	for range 3 {
		usage, err := l.Consume(context.Background(), userID)
		require.NoError(t, err)
		require.Equal(t, 0, usage.ScansToday)
		require.Equal(t, 1, usage.Remaining)
	}

	usage, err := l.Usage(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 0, usage.ScansToday)
}
