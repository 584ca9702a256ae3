// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// ContractModel represents the contracts table in the database.
type ContractModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Reference string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Subject   string          `gorm:"type:varchar(500);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status    string          `gorm:"type:varchar(20);not null;index"`
	StartDate time.Time       `gorm:"type:date;not null;index"`
	Deadline  time.Time       `gorm:"type:date;not null"`
	Awardee   string          `gorm:"type:varchar(255)"`
	MarketID  *uuid.UUID      `gorm:"type:uuid;index"`

	PaymentStatus   string           `gorm:"type:varchar(20);not null;index"`
	PartialAmount   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	RemainingAmount decimal.Decimal  `gorm:"type:decimal(15,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Market *MarketModel `gorm:"foreignKey:MarketID;references:ID"`
}

// TableName returns the table name for the ContractModel.
func (ContractModel) TableName() string {
	return "contracts"
}

// ToEntity converts a ContractModel to a domain Contract entity.
func (m *ContractModel) ToEntity() *entity.Contract {
	contract := &entity.Contract{
		ID:              m.ID,
		Reference:       m.Reference,
		Subject:         m.Subject,
		Amount:          m.Amount,
		Status:          entity.ContractStatus(m.Status),
		StartDate:       m.StartDate,
		Deadline:        m.Deadline,
		Awardee:         m.Awardee,
		MarketID:        m.MarketID,
		PaymentStatus:   entity.PaymentStatus(m.PaymentStatus),
		PartialAmount:   m.PartialAmount,
		RemainingAmount: m.RemainingAmount,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Market != nil {
		contract.Market = m.Market.ToEntity()
	}
	return contract
}

// ContractFromEntity converts a domain Contract entity to a ContractModel.
func ContractFromEntity(c *entity.Contract) *ContractModel {
	return &ContractModel{
		ID:              c.ID,
		Reference:       c.Reference,
		Subject:         c.Subject,
		Amount:          c.Amount,
		Status:          string(c.Status),
		StartDate:       c.StartDate,
		Deadline:        c.Deadline,
		Awardee:         c.Awardee,
		MarketID:        c.MarketID,
		PaymentStatus:   string(c.PaymentStatus),
		PartialAmount:   c.PartialAmount,
		RemainingAmount: c.RemainingAmount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
