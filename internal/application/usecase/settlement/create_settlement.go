// Package settlement contains settlement-related use cases.
package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// CreateSettlementInput represents the input for settlement creation.
type CreateSettlementInput struct {
	ContractID uuid.UUID
	Amount     decimal.Decimal
	SettledAt  time.Time
	Reference  string
	Notes      string
}

// CreateSettlementOutput represents the output of settlement creation.
type CreateSettlementOutput struct {
	Settlement *entity.Settlement
}

// CreateSettlementUseCase handles settlement creation logic.
type CreateSettlementUseCase struct {
	settlementRepo adapter.SettlementRepository
	contractRepo   adapter.ContractRepository
	publisher      adapter.ChangePublisher
	refresh        *finance.RefreshOverviewUseCase
}

// NewCreateSettlementUseCase creates a new CreateSettlementUseCase instance.
func NewCreateSettlementUseCase(
	settlementRepo adapter.SettlementRepository,
	contractRepo adapter.ContractRepository,
	publisher adapter.ChangePublisher,
	refresh *finance.RefreshOverviewUseCase,
) *CreateSettlementUseCase {
	return &CreateSettlementUseCase{
		settlementRepo: settlementRepo,
		contractRepo:   contractRepo,
		publisher:      publisher,
		refresh:        refresh,
	}
}

// Execute validates and records a payment against a contract, then re-runs
// the aggregation pipeline. The referenced contract must exist; invalid
// input is rejected before any write.
func (uc *CreateSettlementUseCase) Execute(ctx context.Context, input CreateSettlementInput) (*CreateSettlementOutput, error) {
	if err := validateSettlementFields(input.Amount, input.SettledAt); err != nil {
		return nil, err
	}

	if _, err := uc.contractRepo.FindByID(ctx, input.ContractID); err != nil {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeSettlementContractNotFound,
			"contract not found for settlement",
			err,
		)
	}

	settlement := entity.NewSettlement(input.ContractID, input.Amount, input.SettledAt, input.Reference, input.Notes)

	if err := uc.settlementRepo.Create(ctx, settlement); err != nil {
		return nil, err
	}

	publishChange(ctx, uc.publisher, adapter.ChangeEventInsert, settlement.ID)
	refreshAfterWrite(ctx, uc.refresh)

	return &CreateSettlementOutput{Settlement: settlement}, nil
}

// validateSettlementFields rejects malformed settlement input before any
// store call.
func validateSettlementFields(amount decimal.Decimal, settledAt time.Time) error {
	if !amount.IsPositive() {
		return domainerror.NewSettlementError(
			domainerror.ErrCodeInvalidSettlementAmount,
			"amount must be a positive number",
			domainerror.ErrInvalidSettlementAmount,
		)
	}
	if settledAt.IsZero() {
		return domainerror.NewSettlementError(
			domainerror.ErrCodeMissingSettlementDate,
			"settlement date is required",
			domainerror.ErrMissingSettlementDate,
		)
	}
	return nil
}

// publishChange emits a change event after a confirmed write. Publish
// failures are logged but never fail the mutation that already committed.
func publishChange(ctx context.Context, publisher adapter.ChangePublisher, eventType adapter.ChangeEventType, recordID uuid.UUID) {
	if publisher == nil {
		return
	}
	event := adapter.ChangeEvent{
		Table:      adapter.TableSettlements,
		Type:       eventType,
		RecordID:   recordID,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish settlement change event", "type", eventType, "error", err)
	}
}

// refreshAfterWrite re-runs the aggregation pipeline after a confirmed write.
func refreshAfterWrite(ctx context.Context, refresh *finance.RefreshOverviewUseCase) {
	if refresh == nil {
		return
	}
	if _, err := refresh.Execute(ctx); err != nil {
		slog.Error("Re-aggregation after settlement mutation failed", "error", err)
	}
}
