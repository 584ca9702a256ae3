package expense

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

// UpdateExpenseInput represents the input for expense update. Nil pointer
// fields are left unchanged.
type UpdateExpenseInput struct {
	ID            uuid.UUID
	Description   *string
	Amount        *decimal.Decimal
	Category      *entity.ExpenseCategory
	Date          *time.Time
	Status        *entity.ExpenseStatus
	PaymentMethod *entity.PaymentMethod
	Supplier      *string
	InvoiceNumber *string
	Notes         *string
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	publisher   adapter.ChangePublisher
	refresh     *finance.RefreshOverviewUseCase
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	publisher adapter.ChangePublisher,
	refresh *finance.RefreshOverviewUseCase,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		publisher:   publisher,
		refresh:     refresh,
	}
}

// Execute applies the requested field changes, validates the resulting
// expense before any store call, persists it and re-runs the aggregation
// pipeline.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Status != nil {
		expense.Status = *input.Status
	}
	if input.PaymentMethod != nil {
		expense.PaymentMethod = *input.PaymentMethod
	}
	if input.Supplier != nil {
		expense.Supplier = *input.Supplier
	}
	if input.InvoiceNumber != nil {
		expense.InvoiceNumber = *input.InvoiceNumber
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}

	if err := validateExpenseFields(expense.Description, expense.Amount, expense.Category, expense.PaymentMethod, expense.Date); err != nil {
		return nil, err
	}

	expense.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	publishChange(ctx, uc.publisher, adapter.ChangeEventUpdate, expense.ID)
	refreshAfterWrite(ctx, uc.refresh)

	return &UpdateExpenseOutput{Expense: expense}, nil
}
