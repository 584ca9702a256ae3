// Package contract contains contract-related use cases.
package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// UpdatePaymentStatusInput represents the input for a payment-status transition.
type UpdatePaymentStatusInput struct {
	CallerID      uuid.UUID
	ContractID    uuid.UUID
	NewStatus     entity.PaymentStatus
	PartialAmount *decimal.Decimal // Required when NewStatus is partial
}

// UpdatePaymentStatusOutput represents the output of a payment-status transition.
type UpdatePaymentStatusOutput struct {
	Contract *entity.Contract
}

// UpdatePaymentStatusUseCase handles contract payment-status transitions.
// Any status may move to any other status, but each transition carries
// mandatory side effects on the dependent payment fields, and only
// administrators and managers may invoke one.
type UpdatePaymentStatusUseCase struct {
	contractRepo adapter.ContractRepository
	profileRepo  adapter.UserProfileRepository
	publisher    adapter.ChangePublisher
	refresh      *finance.RefreshOverviewUseCase
}

// NewUpdatePaymentStatusUseCase creates a new UpdatePaymentStatusUseCase instance.
func NewUpdatePaymentStatusUseCase(
	contractRepo adapter.ContractRepository,
	profileRepo adapter.UserProfileRepository,
	publisher adapter.ChangePublisher,
	refresh *finance.RefreshOverviewUseCase,
) *UpdatePaymentStatusUseCase {
	return &UpdatePaymentStatusUseCase{
		contractRepo: contractRepo,
		profileRepo:  profileRepo,
		publisher:    publisher,
		refresh:      refresh,
	}
}

// Execute authorizes the caller, validates the transition, persists the new
// payment state and re-runs the aggregation pipeline. Authorization and
// validation failures are rejected before any store write, leaving the
// contract's persisted state untouched.
func (uc *UpdatePaymentStatusUseCase) Execute(ctx context.Context, input UpdatePaymentStatusInput) (*UpdatePaymentStatusOutput, error) {
	profile, err := uc.profileRepo.FindByID(ctx, input.CallerID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingToken,
			"caller profile not found",
			domainerror.ErrNotAuthenticated,
		)
	}
	if !profile.Role.CanManagePayments() {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInsufficientRole,
			fmt.Sprintf("role %q may not change payment status", profile.Role),
			domainerror.ErrInsufficientRole,
		)
	}

	contract, err := uc.contractRepo.FindByID(ctx, input.ContractID)
	if err != nil {
		if errors.Is(err, domainerror.ErrContractNotFound) {
			return nil, domainerror.NewContractError(
				domainerror.ErrCodeContractNotFound,
				"contract not found",
				domainerror.ErrContractNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}

	update, err := PaymentTransition(contract, input.NewStatus, input.PartialAmount)
	if err != nil {
		return nil, err
	}

	updated, err := uc.contractRepo.UpdatePaymentState(ctx, contract.ID, update)
	if err != nil {
		return nil, err
	}

	uc.publishChange(ctx, updated.ID)
	uc.refreshAfterWrite(ctx)

	slog.Info("Contract payment status changed",
		"contract_id", contract.ID,
		"from", contract.PaymentStatus,
		"to", update.Status,
		"changed_by", profile.ID,
	)

	return &UpdatePaymentStatusOutput{Contract: updated}, nil
}

// PaymentTransition is the explicit transition function of the payment
// state machine. It validates the target status and computes the dependent
// field updates:
//
//   - partial: requires a partial amount strictly between zero and the
//     contract amount; the remaining amount becomes amount - partial.
//   - paid: forces remaining = 0 and partial = amount, regardless of input.
//   - any other status: persists the status only.
func PaymentTransition(contract *entity.Contract, newStatus entity.PaymentStatus, partialAmount *decimal.Decimal) (adapter.PaymentStateUpdate, error) {
	if !entity.IsValidPaymentStatus(newStatus) {
		return adapter.PaymentStateUpdate{}, domainerror.NewContractError(
			domainerror.ErrCodeInvalidPaymentStatus,
			fmt.Sprintf("unknown payment status %q", newStatus),
			domainerror.ErrInvalidPaymentStatus,
		)
	}

	update := adapter.PaymentStateUpdate{Status: newStatus}

	switch newStatus {
	case entity.PaymentStatusPartial:
		if partialAmount == nil {
			return adapter.PaymentStateUpdate{}, domainerror.NewContractError(
				domainerror.ErrCodeMissingPartialAmount,
				"partial amount is required when status is partial",
				domainerror.ErrMissingPartialAmount,
			)
		}
		if !partialAmount.IsPositive() || partialAmount.GreaterThanOrEqual(contract.Amount) {
			return adapter.PaymentStateUpdate{}, domainerror.NewContractError(
				domainerror.ErrCodePartialAmountOutOfRange,
				fmt.Sprintf("partial amount must be between 0 and %s exclusive", contract.Amount),
				domainerror.ErrPartialAmountOutOfRange,
			)
		}
		remaining := contract.Amount.Sub(*partialAmount)
		update.PartialAmount = partialAmount
		update.RemainingAmount = &remaining

	case entity.PaymentStatusPaid:
		zero := decimal.Zero
		full := contract.Amount
		update.RemainingAmount = &zero
		update.PartialAmount = &full
	}

	return update, nil
}

// publishChange emits a contract change event after a confirmed write.
func (uc *UpdatePaymentStatusUseCase) publishChange(ctx context.Context, contractID uuid.UUID) {
	if uc.publisher == nil {
		return
	}
	event := adapter.ChangeEvent{
		Table:      adapter.TableContracts,
		Type:       adapter.ChangeEventUpdate,
		RecordID:   contractID,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish contract change event", "error", err)
	}
}

// refreshAfterWrite re-runs the aggregation pipeline after a confirmed write.
func (uc *UpdatePaymentStatusUseCase) refreshAfterWrite(ctx context.Context) {
	if uc.refresh == nil {
		return
	}
	if _, err := uc.refresh.Execute(ctx); err != nil {
		slog.Error("Re-aggregation after payment-status change failed", "error", err)
	}
}
