package error

import "errors"

// Spreadsheet import errors.
var (
	// ErrHeaderNotDetected is returned when no row of the sheet looks like a header.
	ErrHeaderNotDetected = errors.New("could not detect header row")

	// ErrMappingIncomplete is returned when description or amount is not mapped.
	ErrMappingIncomplete = errors.New("description and amount columns must be mapped")

	// ErrUnknownColumn is returned when a mapping names a header absent from the sheet.
	ErrUnknownColumn = errors.New("mapped column not found in header")

	// ErrUnsupportedFormat is returned for file extensions no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrChunkRejected is returned when the server refuses a chunk of a chunked upload.
	ErrChunkRejected = errors.New("chunk rejected")
)

// ImportErrorCode defines error codes for spreadsheet import errors.
type ImportErrorCode string

const (
	ErrCodeHeaderNotDetected ImportErrorCode = "IMP-010001"
	ErrCodeMappingIncomplete ImportErrorCode = "IMP-010002"
	ErrCodeUnknownColumn     ImportErrorCode = "IMP-010003"
	ErrCodeUnsupportedFormat ImportErrorCode = "IMP-010004"
	ErrCodeUnreadableFile    ImportErrorCode = "IMP-010005"
	ErrCodeMissingFile       ImportErrorCode = "IMP-010006"
	ErrCodeInvalidMapping    ImportErrorCode = "IMP-010007"
)

// ImportError represents a structural import failure.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{Code: code, Message: message, Err: err}
}
