// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// PaymentStateUpdate carries the fields persisted by a payment-status
// transition. Nil pointers mean "leave the column untouched".
type PaymentStateUpdate struct {
	Status          entity.PaymentStatus
	PartialAmount   *decimal.Decimal
	RemainingAmount *decimal.Decimal
}

// ContractRepository defines the interface for contract persistence operations.
// Contracts are originated externally; this service never creates or deletes them.
type ContractRepository interface {
	// FindActiveWithMarket retrieves all active contracts with their linked
	// market expanded. Only active contracts enter the financial aggregation.
	FindActiveWithMarket(ctx context.Context) ([]*entity.Contract, error)

	// FindByID retrieves a contract by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Contract, error)

	// UpdatePaymentState persists a payment-status transition and its
	// derived-field side effects, returning the updated contract.
	UpdatePaymentState(ctx context.Context, id uuid.UUID, update PaymentStateUpdate) (*entity.Contract, error)
}
