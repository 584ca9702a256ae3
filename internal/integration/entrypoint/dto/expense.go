package dto

import (
	"time"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Description   string  `json:"description" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Supplier      string  `json:"supplier"`
	InvoiceNumber string  `json:"invoice_number"`
	Notes         string  `json:"notes"`
}

// UpdateExpenseRequest represents the request body for expense update.
// Omitted fields are left unchanged.
type UpdateExpenseRequest struct {
	Description   *string  `json:"description"`
	Amount        *float64 `json:"amount"`
	Category      *string  `json:"category"`
	Date          *string  `json:"date"`
	Status        *string  `json:"status"`
	PaymentMethod *string  `json:"payment_method"`
	Supplier      *string  `json:"supplier"`
	InvoiceNumber *string  `json:"invoice_number"`
	Notes         *string  `json:"notes"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID            string  `json:"id"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	Supplier      string  `json:"supplier,omitempty"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ToExpenseResponse converts an expense entity to its response DTO.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	amount, _ := expense.Amount.Float64()

	return ExpenseResponse{
		ID:            expense.ID.String(),
		Description:   expense.Description,
		Amount:        amount,
		Category:      string(expense.Category),
		Date:          expense.Date.Format("2006-01-02"),
		Status:        string(expense.Status),
		PaymentMethod: string(expense.PaymentMethod),
		Supplier:      expense.Supplier,
		InvoiceNumber: expense.InvoiceNumber,
		Notes:         expense.Notes,
		CreatedAt:     expense.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     expense.UpdatedAt.Format(time.RFC3339),
	}
}
