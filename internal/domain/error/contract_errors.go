package error

import "errors"

// Contract domain errors.
var (
	// ErrContractNotFound is returned when a contract is not found in the store.
	ErrContractNotFound = errors.New("contract not found")

	// ErrInvalidPaymentStatus is returned when the target payment status is not a known status.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrMissingPartialAmount is returned when transitioning to partial without a partial amount.
	ErrMissingPartialAmount = errors.New("partial amount is required for partial status")

	// ErrPartialAmountOutOfRange is returned when the partial amount is not strictly
	// between zero and the contract's total value.
	ErrPartialAmountOutOfRange = errors.New("partial amount must be greater than zero and less than the contract amount")
)

// ContractErrorCode defines error codes for contract errors.
// Format: CTR-XXYYYY where XX is category and YYYY is specific error.
type ContractErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPaymentStatus    ContractErrorCode = "CTR-010001"
	ErrCodeMissingPartialAmount    ContractErrorCode = "CTR-010002"
	ErrCodePartialAmountOutOfRange ContractErrorCode = "CTR-010003"

	// Store errors (02XXXX)
	ErrCodeContractNotFound ContractErrorCode = "CTR-020001"
)

// ContractError represents a contract error with code and message.
type ContractError struct {
	Code    ContractErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ContractError) Unwrap() error {
	return e.Err
}

// NewContractError creates a new ContractError with the given code and message.
func NewContractError(code ContractErrorCode, message string, err error) *ContractError {
	return &ContractError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
