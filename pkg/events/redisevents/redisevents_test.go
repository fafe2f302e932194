package redisevents_test

import (
	"context"
	"fmt"
	"testing"
	"time"
	"webguard/pkg/domain"
	"webguard/pkg/events/redisevents"

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

	return client
}

func receive(t *testing.T, ch <-chan domain.SettingChange) domain.SettingChange {
	t.Helper()
	select {
	case change, ok := <-ch:
		require.True(t, ok, "channel closed")

		return change
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for setting change")
	}

	return domain.SettingChange{}
}

func TestBus_PublishSubscribe(t *testing.T) {
	client := startRedis(t)
	bus := redisevents.New(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice := domain.UserID(uuid.New())
	bob := domain.UserID(uuid.New())

	aliceCh, err := bus.Subscribe(ctx, alice)
	require.NoError(t, err)
	bobCh, err := bus.Subscribe(ctx, bob)
	require.NoError(t, err)

	change := domain.SettingChange{
		UserID:    alice,
		Key:       domain.SettingContentFilter,
		Value:     true,
		ChangedAt: time.Date(2025, 5, 17, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, bus.Publish(ctx, change))

	require.Equal(t, change, receive(t, aliceCh))

	select {
	case got := <-bobCh:
		require.Failf(t, "unexpected event", "bob received %+v", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestBus_SkipsMalformedPayloads(t *testing.T) {
	client := startRedis(t)
	bus := redisevents.New(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := domain.UserID(uuid.New())
	ch, err := bus.Subscribe(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, client.Publish(ctx, redisevents.Channel(userID), "not json").Err())
	change := domain.SettingChange{UserID: userID, Key: domain.SettingFormAnalysis, Value: false, ChangedAt: time.Unix(0, 0).UTC()}
	require.NoError(t, bus.Publish(ctx, change))

	require.Equal(t, change, receive(t, ch))
}

func TestBus_ClosesOnCancel(t *testing.T) {
	client := startRedis(t)
	bus := redisevents.New(client)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, domain.UserID(uuid.New()))
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "channel not closed after cancel")
	}
}

func TestChannel(t *testing.T) {
	id := uuid.MustParse("6f1c1a4e-8d43-4c9a-9a2b-1f5b7c3d2e10")
	require.Equal(t, "settings:6f1c1a4e-8d43-4c9a-9a2b-1f5b7c3d2e10", redisevents.Channel(domain.UserID(id)))
}
