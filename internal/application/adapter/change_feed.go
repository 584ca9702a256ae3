package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Change-feed table names for the financial entity collections.
const (
	TableContracts   = "contracts"
	TableMarkets     = "markets"
	TableSettlements = "settlements"
	TableExpenses    = "expenses"
)

// FinancialTables lists every table whose changes invalidate the financial aggregate.
var FinancialTables = []string{TableContracts, TableMarkets, TableSettlements, TableExpenses}

// ChangeEventType represents the kind of change delivered on the feed.
type ChangeEventType string

const (
	ChangeEventInsert ChangeEventType = "insert"
	ChangeEventUpdate ChangeEventType = "update"
	ChangeEventDelete ChangeEventType = "delete"
)

// ChangeEvent is one change notification for a tracked table.
type ChangeEvent struct {
	Table      string
	Type       ChangeEventType
	RecordID   uuid.UUID
	OccurredAt time.Time
}

// ChangePublisher publishes change events after confirmed writes.
type ChangePublisher interface {
	// Publish delivers a change event to all subscribers. Publish failures
	// must not fail the originating mutation.
	Publish(ctx context.Context, event ChangeEvent) error
}

// ChangeFeed delivers change events pushed by the store.
type ChangeFeed interface {
	// Subscribe returns a channel of change events for the given tables.
	// The channel is closed when ctx is cancelled.
	Subscribe(ctx context.Context, tables ...string) (<-chan ChangeEvent, error)
}
