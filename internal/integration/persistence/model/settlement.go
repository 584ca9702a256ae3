package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// SettlementModel represents the settlements table in the database.
type SettlementModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ContractID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SettledAt  time.Time       `gorm:"type:date;not null;index"`
	Reference  string          `gorm:"type:varchar(100)"`
	Notes      string          `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`

	Contract *ContractModel `gorm:"foreignKey:ContractID;references:ID"`
}

// TableName returns the table name for the SettlementModel.
func (SettlementModel) TableName() string {
	return "settlements"
}

// ToEntity converts a SettlementModel to a domain Settlement entity.
func (m *SettlementModel) ToEntity() *entity.Settlement {
	return &entity.Settlement{
		ID:         m.ID,
		ContractID: m.ContractID,
		Amount:     m.Amount,
		SettledAt:  m.SettledAt,
		Reference:  m.Reference,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// SettlementFromEntity converts a domain Settlement entity to a SettlementModel.
func SettlementFromEntity(s *entity.Settlement) *SettlementModel {
	return &SettlementModel{
		ID:         s.ID,
		ContractID: s.ContractID,
		Amount:     s.Amount,
		SettledAt:  s.SettledAt,
		Reference:  s.Reference,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
