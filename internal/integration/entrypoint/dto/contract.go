package dto

import (
	"time"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// UpdatePaymentStatusRequest represents the request body for a contract
// payment-status transition.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string   `json:"payment_status" binding:"required"`
	PartialAmount *float64 `json:"partial_amount"`
}

// ContractResponse represents a contract in API responses.
type ContractResponse struct {
	ID              string          `json:"id"`
	Reference       string          `json:"reference"`
	Subject         string          `json:"subject"`
	Amount          float64         `json:"amount"`
	Status          string          `json:"status"`
	StartDate       string          `json:"start_date"`
	Deadline        string          `json:"deadline"`
	Awardee         string          `json:"awardee"`
	MarketID        *string         `json:"market_id,omitempty"`
	Market          *MarketResponse `json:"market,omitempty"`
	PaymentStatus   string          `json:"payment_status"`
	PartialAmount   *float64        `json:"partial_amount,omitempty"`
	RemainingAmount float64         `json:"remaining_amount"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// MarketResponse represents a market in API responses.
type MarketResponse struct {
	ID              string  `json:"id"`
	Number          string  `json:"number"`
	Object          string  `json:"object"`
	EstimatedAmount float64 `json:"estimated_amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
}

// ToContractResponse converts a contract entity to its response DTO.
func ToContractResponse(contract *entity.Contract) ContractResponse {
	amount, _ := contract.Amount.Float64()
	remainingAmount, _ := contract.RemainingAmount.Float64()

	var partialAmount *float64
	if contract.PartialAmount != nil {
		v, _ := contract.PartialAmount.Float64()
		partialAmount = &v
	}

	var marketID *string
	if contract.MarketID != nil {
		id := contract.MarketID.String()
		marketID = &id
	}

	var market *MarketResponse
	if contract.Market != nil {
		m := ToMarketResponse(contract.Market)
		market = &m
	}

	return ContractResponse{
		ID:              contract.ID.String(),
		Reference:       contract.Reference,
		Subject:         contract.Subject,
		Amount:          amount,
		Status:          string(contract.Status),
		StartDate:       contract.StartDate.Format("2006-01-02"),
		Deadline:        contract.Deadline.Format("2006-01-02"),
		Awardee:         contract.Awardee,
		MarketID:        marketID,
		Market:          market,
		PaymentStatus:   string(contract.PaymentStatus),
		PartialAmount:   partialAmount,
		RemainingAmount: remainingAmount,
		CreatedAt:       contract.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       contract.UpdatedAt.Format(time.RFC3339),
	}
}

// ToMarketResponse converts a market entity to its response DTO.
func ToMarketResponse(market *entity.Market) MarketResponse {
	estimatedAmount, _ := market.EstimatedAmount.Float64()

	return MarketResponse{
		ID:              market.ID.String(),
		Number:          market.Number,
		Object:          market.Object,
		EstimatedAmount: estimatedAmount,
		Currency:        market.Currency,
		Status:          string(market.Status),
	}
}
