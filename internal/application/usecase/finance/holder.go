package finance

import (
	"sync"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// SnapshotHolder publishes the result of the fetch-join-aggregate pipeline.
// A snapshot is replaced atomically: readers keep seeing the previous one
// until a full pipeline run has completed, and a failed run never publishes
// partial state.
type SnapshotHolder struct {
	mu       sync.RWMutex
	snapshot *entity.FinanceSnapshot
	loading  bool
	lastErr  string
}

// NewSnapshotHolder creates an empty snapshot holder.
func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

// Publish replaces the current snapshot and clears any previous error.
func (h *SnapshotHolder) Publish(snapshot *entity.FinanceSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshot = snapshot
	h.lastErr = ""
}

// SetLoading marks the pipeline as running or idle.
func (h *SnapshotHolder) SetLoading(loading bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loading = loading
}

// SetError records a pipeline failure. The previous snapshot, if any,
// remains visible.
func (h *SnapshotHolder) SetError(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastErr = message
}

// Current returns the published snapshot together with the loading flag and
// the last error message (empty when the last run succeeded).
func (h *SnapshotHolder) Current() (*entity.FinanceSnapshot, bool, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot, h.loading, h.lastErr
}

// Snapshot returns the published snapshot, or ErrNoSnapshot when no
// pipeline run has completed yet.
func (h *SnapshotHolder) Snapshot() (*entity.FinanceSnapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.snapshot == nil {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeNoSnapshot,
			"no financial snapshot available yet",
			domainerror.ErrNoSnapshot,
		)
	}
	return h.snapshot, nil
}
