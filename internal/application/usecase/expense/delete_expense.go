package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	ID uuid.UUID
}

// DeleteExpenseUseCase handles expense deletion logic.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	publisher   adapter.ChangePublisher
	refresh     *finance.RefreshOverviewUseCase
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	publisher adapter.ChangePublisher,
	refresh *finance.RefreshOverviewUseCase,
) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		publisher:   publisher,
		refresh:     refresh,
	}
}

// Execute deletes the expense and re-runs the aggregation pipeline. The
// existence check keeps store "not found" errors distinguishable from
// delete failures.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	if _, err := uc.expenseRepo.FindByID(ctx, input.ID); err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return fmt.Errorf("failed to find expense: %w", err)
	}

	if err := uc.expenseRepo.Delete(ctx, input.ID); err != nil {
		return err
	}

	publishChange(ctx, uc.publisher, adapter.ChangeEventDelete, input.ID)
	refreshAfterWrite(ctx, uc.refresh)

	return nil
}
