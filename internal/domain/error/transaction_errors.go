package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist in the caller's company.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not a positive number.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrMissingTransactionFields is returned when type or amount is absent.
	ErrMissingTransactionFields = errors.New("missing transaction fields")

	// ErrEmptyBulkPayload is returned when a bulk payload is not a non-empty array.
	ErrEmptyBulkPayload = errors.New("bulk payload must be a non-empty array")

	// ErrBulkPayloadTooLarge is returned when a bulk payload exceeds the item limit.
	ErrBulkPayloadTooLarge = errors.New("bulk payload too large")

	// ErrNoValidTransactions is returned when no bulk item passed validation.
	ErrNoValidTransactions = errors.New("no valid transactions")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010010"

	// Bulk errors (02XXXX)
	ErrCodeInvalidBulkPayload  TransactionErrorCode = "TXN-020001"
	ErrCodeNoValidTransactions TransactionErrorCode = "TXN-020002"
	ErrCodeBulkPayloadTooLarge TransactionErrorCode = "TXN-020003"
	ErrCodeBulkImportFailed    TransactionErrorCode = "TXN-020004"

	// Internal errors (09XXXX)
	ErrCodeTransactionInternal TransactionErrorCode = "TXN-090001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
