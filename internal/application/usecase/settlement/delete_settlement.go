package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// DeleteSettlementInput represents the input for settlement deletion.
type DeleteSettlementInput struct {
	ID uuid.UUID
}

// DeleteSettlementUseCase handles settlement deletion logic.
type DeleteSettlementUseCase struct {
	settlementRepo adapter.SettlementRepository
	publisher      adapter.ChangePublisher
	refresh        *finance.RefreshOverviewUseCase
}

// NewDeleteSettlementUseCase creates a new DeleteSettlementUseCase instance.
func NewDeleteSettlementUseCase(
	settlementRepo adapter.SettlementRepository,
	publisher adapter.ChangePublisher,
	refresh *finance.RefreshOverviewUseCase,
) *DeleteSettlementUseCase {
	return &DeleteSettlementUseCase{
		settlementRepo: settlementRepo,
		publisher:      publisher,
		refresh:        refresh,
	}
}

// Execute deletes the settlement and re-runs the aggregation pipeline.
func (uc *DeleteSettlementUseCase) Execute(ctx context.Context, input DeleteSettlementInput) error {
	if _, err := uc.settlementRepo.FindByID(ctx, input.ID); err != nil {
		if errors.Is(err, domainerror.ErrSettlementNotFound) {
			return domainerror.NewSettlementError(
				domainerror.ErrCodeSettlementNotFound,
				"settlement not found",
				domainerror.ErrSettlementNotFound,
			)
		}
		return fmt.Errorf("failed to find settlement: %w", err)
	}

	if err := uc.settlementRepo.Delete(ctx, input.ID); err != nil {
		return err
	}

	publishChange(ctx, uc.publisher, adapter.ChangeEventDelete, input.ID)
	refreshAfterWrite(ctx, uc.refresh)

	return nil
}
