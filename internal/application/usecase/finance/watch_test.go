package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

type stubFeed struct {
	events chan adapter.ChangeEvent
	tables []string
}

func (f *stubFeed) Subscribe(_ context.Context, tables ...string) (<-chan adapter.ChangeEvent, error) {
	f.tables = tables
	return f.events, nil
}

func (f *stubFeed) emit(table string) {
	f.events <- adapter.ChangeEvent{
		Table:      table,
		Type:       adapter.ChangeEventUpdate,
		RecordID:   uuid.New(),
		OccurredAt: time.Now().UTC(),
	}
}

func waitForCondition(t *testing.T, timeout time.Duration, check func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return check()
}

func TestChangeWatcher_DebouncesBursts(t *testing.T) {
	contractRepo := &stubContractRepo{contracts: []*entity.Contract{makeContract(10_000, nil)}}
	holder := NewSnapshotHolder()
	refresh := NewRefreshOverviewUseCase(contractRepo, &stubSettlementRepo{}, &stubExpenseRepo{}, holder)

	feed := &stubFeed{events: make(chan adapter.ChangeEvent)}
	watcher := NewChangeWatcher(feed, refresh, 30*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = watcher.Run(ctx)
		close(done)
	}()

	// A burst of notifications within the window coalesces into one refresh.
	feed.emit(adapter.TableContracts)
	feed.emit(adapter.TableSettlements)
	feed.emit(adapter.TableExpenses)

	if !waitForCondition(t, time.Second, func() bool { return contractRepo.calls.Load() == 1 }) {
		t.Fatalf("expected exactly 1 refresh after the burst, got %d", contractRepo.calls.Load())
	}

	// The window has fired; the next event starts a fresh burst.
	feed.emit(adapter.TableContracts)

	if !waitForCondition(t, time.Second, func() bool { return contractRepo.calls.Load() == 2 }) {
		t.Fatalf("expected a second refresh, got %d", contractRepo.calls.Load())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestChangeWatcher_SubscribesToFinancialTables(t *testing.T) {
	holder := NewSnapshotHolder()
	refresh := NewRefreshOverviewUseCase(&stubContractRepo{}, &stubSettlementRepo{}, &stubExpenseRepo{}, holder)

	feed := &stubFeed{events: make(chan adapter.ChangeEvent)}
	watcher := NewChangeWatcher(feed, refresh, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = watcher.Run(ctx)
		close(done)
	}()

	if !waitForCondition(t, time.Second, func() bool { return len(feed.tables) == len(adapter.FinancialTables) }) {
		t.Fatalf("expected subscription to %d tables, got %v", len(adapter.FinancialTables), feed.tables)
	}

	cancel()
	<-done
}

func TestChangeWatcher_ClosedFeedStopsWatcher(t *testing.T) {
	holder := NewSnapshotHolder()
	refresh := NewRefreshOverviewUseCase(&stubContractRepo{}, &stubSettlementRepo{}, &stubExpenseRepo{}, holder)

	feed := &stubFeed{events: make(chan adapter.ChangeEvent)}
	watcher := NewChangeWatcher(feed, refresh, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(context.Background())
	}()

	close(feed.events)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error on feed close, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop when the feed closed")
	}
}

func TestNewChangeWatcher_DefaultDebounce(t *testing.T) {
	watcher := NewChangeWatcher(&stubFeed{}, nil, 0)
	if watcher.debounce != DefaultDebounceWindow {
		t.Errorf("expected default debounce %s, got %s", DefaultDebounceWindow, watcher.debounce)
	}
}
