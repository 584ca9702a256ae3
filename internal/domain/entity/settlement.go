package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement represents a recorded payment applied against a contract's
// outstanding balance.
type Settlement struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	Amount     decimal.Decimal
	SettledAt  time.Time
	Reference  string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSettlement creates a new Settlement entity.
func NewSettlement(contractID uuid.UUID, amount decimal.Decimal, settledAt time.Time, reference, notes string) *Settlement {
	now := time.Now().UTC()

	return &Settlement{
		ID:         uuid.New(),
		ContractID: contractID,
		Amount:     amount,
		SettledAt:  settledAt,
		Reference:  reference,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
