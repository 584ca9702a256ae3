package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Description   string          `gorm:"type:varchar(500);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category      string          `gorm:"type:varchar(20);not null;index"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Supplier      string          `gorm:"type:varchar(255)"`
	InvoiceNumber string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:            m.ID,
		Description:   m.Description,
		Amount:        m.Amount,
		Category:      entity.ExpenseCategory(m.Category),
		Date:          m.Date,
		Status:        entity.ExpenseStatus(m.Status),
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Supplier:      m.Supplier,
		InvoiceNumber: m.InvoiceNumber,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ExpenseFromEntity converts a domain Expense entity to an ExpenseModel.
func ExpenseFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      string(e.Category),
		Date:          e.Date,
		Status:        string(e.Status),
		PaymentMethod: string(e.PaymentMethod),
		Supplier:      e.Supplier,
		InvoiceNumber: e.InvoiceNumber,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
