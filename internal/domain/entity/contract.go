// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractStatus represents the lifecycle status of a contract.
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// PaymentStatus represents how much of a contract's price has been collected.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// AllPaymentStatuses lists every valid payment status.
var AllPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPartial,
	PaymentStatusPaid,
	PaymentStatusOverdue,
	PaymentStatusCancelled,
}

// IsValidPaymentStatus reports whether the given status is a known payment status.
func IsValidPaymentStatus(status PaymentStatus) bool {
	for _, s := range AllPaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Contract represents an awarded unit of work with a fixed price.
// It is originated externally; this service only mutates its payment sub-state.
type Contract struct {
	ID        uuid.UUID
	Reference string
	Subject   string
	Amount    decimal.Decimal // Initial contract amount
	Status    ContractStatus
	StartDate time.Time
	Deadline  time.Time
	Awardee   string
	MarketID  *uuid.UUID // Optional link to the originating market

	// Payment sub-state.
	PaymentStatus   PaymentStatus
	PartialAmount   *decimal.Decimal // Set only when PaymentStatus is partial
	RemainingAmount decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	Market *Market // Loaded via relational expansion, may be nil
}

// IsOverdue reports whether the contract deadline has passed and the
// contract has not been fully paid.
func (c *Contract) IsOverdue(now time.Time) bool {
	return c.Deadline.Before(now) && c.PaymentStatus != PaymentStatusPaid
}
