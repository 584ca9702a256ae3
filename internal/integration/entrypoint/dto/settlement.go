package dto

import (
	"time"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// CreateSettlementRequest represents the request body for settlement creation.
type CreateSettlementRequest struct {
	ContractID string  `json:"contract_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	SettledAt  string  `json:"settled_at" binding:"required"`
	Reference  string  `json:"reference"`
	Notes      string  `json:"notes"`
}

// UpdateSettlementRequest represents the request body for settlement update.
// Omitted fields are left unchanged.
type UpdateSettlementRequest struct {
	Amount    *float64 `json:"amount"`
	SettledAt *string  `json:"settled_at"`
	Reference *string  `json:"reference"`
	Notes     *string  `json:"notes"`
}

// SettlementResponse represents a settlement in API responses.
type SettlementResponse struct {
	ID         string  `json:"id"`
	ContractID string  `json:"contract_id"`
	Amount     float64 `json:"amount"`
	SettledAt  string  `json:"settled_at"`
	Reference  string  `json:"reference,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// ToSettlementResponse converts a settlement entity to its response DTO.
func ToSettlementResponse(settlement *entity.Settlement) SettlementResponse {
	amount, _ := settlement.Amount.Float64()

	return SettlementResponse{
		ID:         settlement.ID.String(),
		ContractID: settlement.ContractID.String(),
		Amount:     amount,
		SettledAt:  settlement.SettledAt.Format("2006-01-02"),
		Reference:  settlement.Reference,
		Notes:      settlement.Notes,
		CreatedAt:  settlement.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  settlement.UpdatedAt.Format(time.RFC3339),
	}
}
