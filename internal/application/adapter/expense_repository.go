package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense in the store.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindAll retrieves all expenses, newest first.
	FindAll(ctx context.Context) ([]*entity.Expense, error)

	// Update updates an existing expense in the store.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense from the store.
	Delete(ctx context.Context, id uuid.UUID) error
}
