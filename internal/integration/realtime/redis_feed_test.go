package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
)

func newTestFeed(t *testing.T) *RedisChangeFeed {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisChangeFeed(client)
}

func TestRedisChangeFeed_PublishSubscribeRoundTrip(t *testing.T) {
	feed := newTestFeed(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := feed.Subscribe(ctx, adapter.TableExpenses)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	sent := adapter.ChangeEvent{
		Table:      adapter.TableExpenses,
		Type:       adapter.ChangeEventInsert,
		RecordID:   uuid.New(),
		OccurredAt: time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := feed.Publish(ctx, sent); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-events:
		if got.Table != sent.Table || got.Type != sent.Type || got.RecordID != sent.RecordID {
			t.Errorf("received event %+v, want %+v", got, sent)
		}
		if !got.OccurredAt.Equal(sent.OccurredAt) {
			t.Errorf("occurred-at drifted: %s vs %s", got.OccurredAt, sent.OccurredAt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestRedisChangeFeed_SubscriptionIsPerTable(t *testing.T) {
	feed := newTestFeed(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := feed.Subscribe(ctx, adapter.TableContracts)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	// An event on a different table must not reach this subscriber.
	other := adapter.ChangeEvent{
		Table:      adapter.TableExpenses,
		Type:       adapter.ChangeEventDelete,
		RecordID:   uuid.New(),
		OccurredAt: time.Now().UTC(),
	}
	if err := feed.Publish(ctx, other); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	tracked := adapter.ChangeEvent{
		Table:      adapter.TableContracts,
		Type:       adapter.ChangeEventUpdate,
		RecordID:   uuid.New(),
		OccurredAt: time.Now().UTC(),
	}
	if err := feed.Publish(ctx, tracked); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-events:
		if got.Table != adapter.TableContracts || got.RecordID != tracked.RecordID {
			t.Errorf("expected only the contracts event, got %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestRedisChangeFeed_MalformedPayloadSkipped(t *testing.T) {
	feed := newTestFeed(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := feed.Subscribe(ctx, adapter.TableSettlements)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := feed.client.Publish(ctx, channelPrefix+adapter.TableSettlements, "not json").Err(); err != nil {
		t.Fatalf("raw publish failed: %v", err)
	}

	valid := adapter.ChangeEvent{
		Table:      adapter.TableSettlements,
		Type:       adapter.ChangeEventInsert,
		RecordID:   uuid.New(),
		OccurredAt: time.Now().UTC(),
	}
	if err := feed.Publish(ctx, valid); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-events:
		if got.RecordID != valid.RecordID {
			t.Errorf("expected the valid event after the malformed one, got %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestRedisChangeFeed_CancelClosesEventChannel(t *testing.T) {
	feed := newTestFeed(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := feed.Subscribe(ctx, adapter.TableMarkets)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected the event channel closed after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
