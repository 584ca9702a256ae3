// Package expense contains expense-related use cases.
package expense

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

// DefaultMutationTimeout is the bounded wait applied to expense writes so a
// stalled store cannot leave the caller stuck indefinitely.
const DefaultMutationTimeout = 10 * time.Second

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	Description   string
	Amount        decimal.Decimal
	Category      entity.ExpenseCategory
	Date          time.Time
	Status        entity.ExpenseStatus
	PaymentMethod entity.PaymentMethod
	Supplier      string
	InvoiceNumber string
	Notes         string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	publisher   adapter.ChangePublisher
	refresh     *finance.RefreshOverviewUseCase
	timeout     time.Duration
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
// A non-positive timeout falls back to DefaultMutationTimeout.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	publisher adapter.ChangePublisher,
	refresh *finance.RefreshOverviewUseCase,
	timeout time.Duration,
) *CreateExpenseUseCase {
	if timeout <= 0 {
		timeout = DefaultMutationTimeout
	}
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		publisher:   publisher,
		refresh:     refresh,
		timeout:     timeout,
	}
}

// Execute validates and persists a new expense, then re-runs the full
// aggregation pipeline. Invalid input is rejected before any store call and
// never triggers a re-aggregation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateExpenseFields(input.Description, input.Amount, input.Category, input.PaymentMethod, input.Date); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = entity.ExpenseStatusPending
	}

	expense := entity.NewExpense(
		input.Description,
		input.Amount,
		input.Category,
		input.Date,
		status,
		input.PaymentMethod,
		input.Supplier,
		input.InvoiceNumber,
		input.Notes,
	)

	writeCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := uc.expenseRepo.Create(writeCtx, expense); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseMutationTimeout,
				fmt.Sprintf("expense creation exceeded %s", uc.timeout),
				domainerror.ErrExpenseMutationTimeout,
			)
		}
		return nil, err
	}

	publishChange(ctx, uc.publisher, adapter.ChangeEventInsert, expense.ID)
	refreshAfterWrite(ctx, uc.refresh)

	return &CreateExpenseOutput{Expense: expense}, nil
}

// validateExpenseFields rejects malformed expense input before any store
// call. The amount must be a strictly positive number.
func validateExpenseFields(
	description string,
	amount decimal.Decimal,
	category entity.ExpenseCategory,
	method entity.PaymentMethod,
	date time.Time,
) error {
	if description == "" {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseDescription,
			"description is required",
			domainerror.ErrMissingExpenseDescription,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be a positive number",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	if !entity.IsValidExpenseCategory(category) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCategory,
			fmt.Sprintf("unknown expense category %q", category),
			domainerror.ErrInvalidExpenseCategory,
		)
	}
	if !entity.IsValidPaymentMethod(method) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidPaymentMethod,
			fmt.Sprintf("unknown payment method %q", method),
			domainerror.ErrInvalidPaymentMethod,
		)
	}
	if date.IsZero() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseDate,
			"date is required",
			domainerror.ErrMissingExpenseDate,
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
		Table:      adapter.TableExpenses,
		Type:       eventType,
		RecordID:   recordID,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish expense change event", "type", eventType, "error", err)
	}
}

// refreshAfterWrite re-runs the aggregation pipeline after a confirmed
// write. A refresh failure is recorded on the published snapshot state and
// logged; the committed mutation itself is still reported as successful.
func refreshAfterWrite(ctx context.Context, refresh *finance.RefreshOverviewUseCase) {
	if refresh == nil {
		return
	}
	if _, err := refresh.Execute(ctx); err != nil {
		slog.Error("Re-aggregation after expense mutation failed", "error", err)
	}
}
