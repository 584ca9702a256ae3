// Package realtime implements the change notification channel on Redis
// pub/sub. Each tracked table has its own channel; mutations publish one
// message per confirmed write and subscribers receive decoded events.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
)

// channelPrefix namespaces the per-table pub/sub channels.
const channelPrefix = "changes:"

// changeMessage is the wire format of a change event.
type changeMessage struct {
	Table      string    `json:"table"`
	Type       string    `json:"type"`
	RecordID   uuid.UUID `json:"record_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RedisChangeFeed implements adapter.ChangePublisher and adapter.ChangeFeed
// on a shared Redis client.
type RedisChangeFeed struct {
	client *redis.Client
}

// NewRedisChangeFeed creates a new Redis-backed change feed.
func NewRedisChangeFeed(client *redis.Client) *RedisChangeFeed {
	return &RedisChangeFeed{
		client: client,
	}
}

// Publish delivers a change event on the table's channel.
func (f *RedisChangeFeed) Publish(ctx context.Context, event adapter.ChangeEvent) error {
	payload, err := json.Marshal(changeMessage{
		Table:      event.Table,
		Type:       string(event.Type),
		RecordID:   event.RecordID,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}

	if err := f.client.Publish(ctx, channelPrefix+event.Table, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of change events for the given tables. The
// returned channel is closed when ctx is cancelled. Malformed messages are
// logged and skipped.
func (f *RedisChangeFeed) Subscribe(ctx context.Context, tables ...string) (<-chan adapter.ChangeEvent, error) {
	channels := make([]string, len(tables))
	for i, table := range tables {
		channels[i] = channelPrefix + table
	}

	pubsub := f.client.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to change channels: %w", err)
	}

	events := make(chan adapter.ChangeEvent)
	go func() {
		defer close(events)
		defer func() {
			if err := pubsub.Close(); err != nil {
				slog.Warn("Failed to close change-feed subscription", "error", err)
			}
		}()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var decoded changeMessage
				if err := json.Unmarshal([]byte(msg.Payload), &decoded); err != nil {
					slog.Warn("Skipping malformed change message",
						"channel", msg.Channel,
						"error", err,
					)
					continue
				}
				event := adapter.ChangeEvent{
					Table:      decoded.Table,
					Type:       adapter.ChangeEventType(decoded.Type),
					RecordID:   decoded.RecordID,
					OccurredAt: decoded.OccurredAt,
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
