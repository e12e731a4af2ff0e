package error

import "errors"

// Inventory domain errors.
var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrMissingInventoryField = errors.New("name and sku are required")
	ErrNegativeQuantity      = errors.New("quantity cannot be negative")
	ErrNegativePrice         = errors.New("prices cannot be negative")
)

// InventoryErrorCode defines error codes for inventory errors.
type InventoryErrorCode string

const (
	ErrCodeInventoryMissingFields InventoryErrorCode = "INV-010001"
	ErrCodeNegativeQuantity       InventoryErrorCode = "INV-010002"
	ErrCodeNegativePrice          InventoryErrorCode = "INV-010003"
	ErrCodeInventoryNotFound      InventoryErrorCode = "INV-010004"
	ErrCodeInventoryInternal      InventoryErrorCode = "INV-090001"
)

// InventoryError represents an inventory error with code and message.
type InventoryError struct {
	Code    InventoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InventoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InventoryError) Unwrap() error {
	return e.Err
}

// NewInventoryError creates a new InventoryError.
func NewInventoryError(code InventoryErrorCode, message string, err error) *InventoryError {
	return &InventoryError{Code: code, Message: message, Err: err}
}
