package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// SettlementRepository defines the interface for settlement persistence operations.
type SettlementRepository interface {
	// Create creates a new settlement in the store.
	Create(ctx context.Context, settlement *entity.Settlement) error

	// FindByID retrieves a settlement by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error)

	// FindAll retrieves all settlements, newest first.
	FindAll(ctx context.Context) ([]*entity.Settlement, error)

	// FindByContract retrieves all settlements recorded against a contract.
	FindByContract(ctx context.Context, contractID uuid.UUID) ([]*entity.Settlement, error)

	// Update updates an existing settlement in the store.
	Update(ctx context.Context, settlement *entity.Settlement) error

	// Delete removes a settlement from the store.
	Delete(ctx context.Context, id uuid.UUID) error
}
