package finance

import (
	"context"
	"log/slog"
	"time"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
)

// DefaultDebounceWindow is the coalescing window for change-feed bursts.
const DefaultDebounceWindow = 500 * time.Millisecond

// ChangeWatcher consumes change notifications for the financial tables and
// triggers a pipeline refresh per burst. Notifications arriving within the
// debounce window are coalesced into a single refresh so a batch of writes
// does not cause redundant store round-trips.
type ChangeWatcher struct {
	feed     adapter.ChangeFeed
	refresh  *RefreshOverviewUseCase
	debounce time.Duration
}

// NewChangeWatcher creates a new change watcher. A non-positive debounce
// falls back to DefaultDebounceWindow.
func NewChangeWatcher(feed adapter.ChangeFeed, refresh *RefreshOverviewUseCase, debounce time.Duration) *ChangeWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounceWindow
	}
	return &ChangeWatcher{
		feed:     feed,
		refresh:  refresh,
		debounce: debounce,
	}
}

// Run subscribes to the financial tables and blocks until the context is
// cancelled. Refresh failures are logged and do not stop the watcher; the
// next burst retries the pipeline.
func (w *ChangeWatcher) Run(ctx context.Context) error {
	events, err := w.feed.Subscribe(ctx, adapter.FinancialTables...)
	if err != nil {
		return err
	}

	slog.Info("Change watcher started", "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := 0

	for {
		select {
		case <-ctx.Done():
			slog.Info("Change watcher shutting down")
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				slog.Info("Change feed closed, watcher stopping")
				return nil
			}
			slog.Debug("Change notification received",
				"table", event.Table,
				"type", event.Type,
				"record_id", event.RecordID,
			)
			if pending == 0 {
				timer.Reset(w.debounce)
			}
			pending++

		case <-timer.C:
			if pending == 0 {
				continue
			}
			slog.Debug("Refreshing after change burst", "events", pending)
			pending = 0
			if _, err := w.refresh.Execute(ctx); err != nil {
				slog.Error("Change-triggered refresh failed", "error", err)
			}
		}
	}
}
