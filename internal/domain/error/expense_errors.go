package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the store.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidExpenseAmount is returned when the expense amount is not a positive number.
	ErrInvalidExpenseAmount = errors.New("expense amount must be a positive number")

	// ErrInvalidExpenseCategory is returned when the expense category is not a known category.
	ErrInvalidExpenseCategory = errors.New("invalid expense category")

	// ErrInvalidPaymentMethod is returned when the payment method is not a known method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrMissingExpenseDescription is returned when the expense description is empty.
	ErrMissingExpenseDescription = errors.New("expense description is required")

	// ErrMissingExpenseDate is returned when the expense date is missing.
	ErrMissingExpenseDate = errors.New("expense date is required")

	// ErrExpenseMutationTimeout is returned when a store write exceeds the bounded wait.
	ErrExpenseMutationTimeout = errors.New("expense operation timed out")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount      ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseCategory    ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidPaymentMethod      ExpenseErrorCode = "EXP-010003"
	ErrCodeMissingExpenseDescription ExpenseErrorCode = "EXP-010004"
	ErrCodeMissingExpenseDate        ExpenseErrorCode = "EXP-010005"

	// Store errors (02XXXX)
	ErrCodeExpenseNotFound         ExpenseErrorCode = "EXP-020001"
	ErrCodeExpenseMutationTimeout  ExpenseErrorCode = "EXP-020002"
	ErrCodeExpenseStoreUnavailable ExpenseErrorCode = "EXP-020003"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
