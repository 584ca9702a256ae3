package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketStatus represents the lifecycle status of a market (tender).
type MarketStatus string

const (
	MarketStatusOpen      MarketStatus = "open"
	MarketStatusAwarded   MarketStatus = "awarded"
	MarketStatusClosed    MarketStatus = "closed"
	MarketStatusCancelled MarketStatus = "cancelled"
)

// Market represents a tender/procurement record carrying the pre-award
// estimated budget. One market may back multiple contracts.
type Market struct {
	ID              uuid.UUID
	Number          string
	Object          string
	EstimatedAmount decimal.Decimal
	Currency        string
	Status          MarketStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
