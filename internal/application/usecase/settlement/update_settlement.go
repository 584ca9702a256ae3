package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// UpdateSettlementInput represents the input for settlement update. Nil
// pointer fields are left unchanged.
type UpdateSettlementInput struct {
	ID        uuid.UUID
	Amount    *decimal.Decimal
	SettledAt *time.Time
	Reference *string
	Notes     *string
}

// UpdateSettlementOutput represents the output of settlement update.
type UpdateSettlementOutput struct {
	Settlement *entity.Settlement
}

// UpdateSettlementUseCase handles settlement update logic.
type UpdateSettlementUseCase struct {
	settlementRepo adapter.SettlementRepository
	publisher      adapter.ChangePublisher
	refresh        *finance.RefreshOverviewUseCase
}

// NewUpdateSettlementUseCase creates a new UpdateSettlementUseCase instance.
func NewUpdateSettlementUseCase(
	settlementRepo adapter.SettlementRepository,
	publisher adapter.ChangePublisher,
	refresh *finance.RefreshOverviewUseCase,
) *UpdateSettlementUseCase {
	return &UpdateSettlementUseCase{
		settlementRepo: settlementRepo,
		publisher:      publisher,
		refresh:        refresh,
	}
}

// Execute applies the requested field changes, validates the result before
// the write, persists it and re-runs the aggregation pipeline.
func (uc *UpdateSettlementUseCase) Execute(ctx context.Context, input UpdateSettlementInput) (*UpdateSettlementOutput, error) {
	settlement, err := uc.settlementRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSettlementNotFound) {
			return nil, domainerror.NewSettlementError(
				domainerror.ErrCodeSettlementNotFound,
				"settlement not found",
				domainerror.ErrSettlementNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find settlement: %w", err)
	}

	if input.Amount != nil {
		settlement.Amount = *input.Amount
	}
	if input.SettledAt != nil {
		settlement.SettledAt = *input.SettledAt
	}
	if input.Reference != nil {
		settlement.Reference = *input.Reference
	}
	if input.Notes != nil {
		settlement.Notes = *input.Notes
	}

	if err := validateSettlementFields(settlement.Amount, settlement.SettledAt); err != nil {
		return nil, err
	}

	settlement.UpdatedAt = time.Now().UTC()

	if err := uc.settlementRepo.Update(ctx, settlement); err != nil {
		return nil, err
	}

	publishChange(ctx, uc.publisher, adapter.ChangeEventUpdate, settlement.ID)
	refreshAfterWrite(ctx, uc.refresh)

	return &UpdateSettlementOutput{Settlement: settlement}, nil
}
