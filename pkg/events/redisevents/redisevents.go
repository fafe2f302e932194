// Package redisevents implements events.Bus on Redis pub/sub. Every user has
// its own channel, "settings:<user id>".
package redisevents

import (
	"context"
	"encoding/json"
	"fmt"
	"webguard/pkg/domain"
	"webguard/pkg/events"
	"webguard/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Bus is a Redis pub/sub backed events.Bus. Delivery is at most once: events
// published while nobody listens are dropped.
type Bus struct {
	client redis.UniversalClient
}

// New creates a Bus on client.
func New(client redis.UniversalClient) *Bus {
	return &Bus{client: client}
}

// Channel returns the pub/sub channel of userID.
func Channel(userID domain.UserID) string {
	return "settings:" + userID.String()
}

// Publish sends change to the channel of change.UserID.
func (b *Bus) Publish(ctx context.Context, change domain.SettingChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("could not marshal setting change: %w", err)
	}

	if err := b.client.Publish(ctx, Channel(change.UserID), payload).Err(); err != nil {
		return fmt.Errorf("could not publish setting change: %w", err)
	}

	return nil
}

// Subscribe listens on the channel of userID until ctx is done.
func (b *Bus) Subscribe(ctx context.Context, userID domain.UserID) (<-chan domain.SettingChange, error) {
	pubsub := b.client.Subscribe(ctx, Channel(userID))
	// wait for the subscription confirmation so no event published after
	// Subscribe returns is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return nil, fmt.Errorf("could not subscribe to setting changes: %w", err)
	}

	out := make(chan domain.SettingChange)
	go func() {
		defer close(out)
		defer func() {
			_ = pubsub.Close()
		}()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var change domain.SettingChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					logger.Warn(ctx, "dropping malformed setting change", zap.String("channel", msg.Channel), zap.Error(err))

					continue
				}

				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Ensure Bus conforms to the events.Bus interface at compile time.
var _ events.Bus = (*Bus)(nil)
