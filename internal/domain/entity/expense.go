package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of an operating expense.
type ExpenseCategory string

const (
	ExpenseCategoryMaterials   ExpenseCategory = "materials"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryPersonnel   ExpenseCategory = "personnel"
	ExpenseCategoryServices    ExpenseCategory = "services"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// AllExpenseCategories lists every valid expense category.
var AllExpenseCategories = []ExpenseCategory{
	ExpenseCategoryMaterials,
	ExpenseCategoryMaintenance,
	ExpenseCategoryPersonnel,
	ExpenseCategoryServices,
	ExpenseCategoryOther,
}

// IsValidExpenseCategory reports whether the given category is known.
func IsValidExpenseCategory(category ExpenseCategory) bool {
	for _, c := range AllExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ExpenseStatus represents the approval status of an expense.
type ExpenseStatus string

const (
	ExpenseStatusPending   ExpenseStatus = "pending"
	ExpenseStatusApproved  ExpenseStatus = "approved"
	ExpenseStatusPaid      ExpenseStatus = "paid"
	ExpenseStatusCancelled ExpenseStatus = "cancelled"
)

// PaymentMethod represents how an expense was (or will be) paid.
type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCheque   PaymentMethod = "cheque"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
)

// AllPaymentMethods lists every valid payment method.
var AllPaymentMethods = []PaymentMethod{
	PaymentMethodTransfer,
	PaymentMethodCheque,
	PaymentMethodCash,
	PaymentMethodCard,
}

// IsValidPaymentMethod reports whether the given payment method is known.
func IsValidPaymentMethod(method PaymentMethod) bool {
	for _, m := range AllPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Expense represents a manually entered cost record, independent of any contract.
type Expense struct {
	ID            uuid.UUID
	Description   string
	Amount        decimal.Decimal
	Category      ExpenseCategory
	Date          time.Time
	Status        ExpenseStatus
	PaymentMethod PaymentMethod
	Supplier      string
	InvoiceNumber string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(
	description string,
	amount decimal.Decimal,
	category ExpenseCategory,
	date time.Time,
	status ExpenseStatus,
	paymentMethod PaymentMethod,
	supplier string,
	invoiceNumber string,
	notes string,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:            uuid.New(),
		Description:   description,
		Amount:        amount,
		Category:      category,
		Date:          date,
		Status:        status,
		PaymentMethod: paymentMethod,
		Supplier:      supplier,
		InvoiceNumber: invoiceNumber,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
