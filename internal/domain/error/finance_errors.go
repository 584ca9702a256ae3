package error

import "errors"

// Finance aggregation domain errors.
var (
	// ErrStoreNotConfigured is returned when the persistent store client is
	// unavailable or misconfigured. Fatal for all operations until resolved.
	ErrStoreNotConfigured = errors.New("persistent store is not configured; check DATABASE_URL")

	// ErrContractsFetchFailed is returned when the contracts fetch step fails.
	ErrContractsFetchFailed = errors.New("failed to fetch contracts")

	// ErrSettlementsFetchFailed is returned when the settlements fetch step fails.
	ErrSettlementsFetchFailed = errors.New("failed to fetch settlements")

	// ErrExpensesFetchFailed is returned when the expenses fetch step fails.
	ErrExpensesFetchFailed = errors.New("failed to fetch expenses")

	// ErrNoSnapshot is returned when no aggregate snapshot has been published yet.
	ErrNoSnapshot = errors.New("no financial snapshot available yet")

	// ErrInvalidReportPeriod is returned when a report period is malformed.
	ErrInvalidReportPeriod = errors.New("invalid report period")

	// ErrUnsupportedExportFormat is returned for unknown export formats.
	ErrUnsupportedExportFormat = errors.New("unsupported export format")

	// ErrUnsupportedReportType is returned for unknown report types.
	ErrUnsupportedReportType = errors.New("unsupported report type")
)

// FinanceErrorCode defines error codes for finance aggregation errors.
// Format: FIN-XXYYYY where XX is category and YYYY is specific error.
type FinanceErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeStoreNotConfigured FinanceErrorCode = "FIN-010001"

	// Pipeline errors (02XXXX)
	ErrCodeContractsFetchFailed   FinanceErrorCode = "FIN-020001"
	ErrCodeSettlementsFetchFailed FinanceErrorCode = "FIN-020002"
	ErrCodeExpensesFetchFailed    FinanceErrorCode = "FIN-020003"
	ErrCodeNoSnapshot             FinanceErrorCode = "FIN-020004"

	// Reporting errors (03XXXX)
	ErrCodeInvalidReportPeriod     FinanceErrorCode = "FIN-030001"
	ErrCodeUnsupportedExportFormat FinanceErrorCode = "FIN-030002"
	ErrCodeUnsupportedReportType   FinanceErrorCode = "FIN-030003"
)

// FinanceError represents a finance aggregation error with code and message.
type FinanceError struct {
	Code    FinanceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FinanceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FinanceError) Unwrap() error {
	return e.Err
}

// NewFinanceError creates a new FinanceError with the given code and message.
func NewFinanceError(code FinanceErrorCode, message string, err error) *FinanceError {
	return &FinanceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
