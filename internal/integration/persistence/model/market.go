package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// MarketModel represents the markets table in the database.
type MarketModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number          string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Object          string          `gorm:"type:varchar(500);not null"`
	EstimatedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MarketModel.
func (MarketModel) TableName() string {
	return "markets"
}

// ToEntity converts a MarketModel to a domain Market entity.
func (m *MarketModel) ToEntity() *entity.Market {
	return &entity.Market{
		ID:              m.ID,
		Number:          m.Number,
		Object:          m.Object,
		EstimatedAmount: m.EstimatedAmount,
		Currency:        m.Currency,
		Status:          entity.MarketStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
