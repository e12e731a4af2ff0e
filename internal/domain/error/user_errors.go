package error

import "errors"

// User management errors.
var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrInvalidPreferences = errors.New("invalid profile preferences")
)

// UserErrorCode defines error codes for profile and user administration errors.
type UserErrorCode string

const (
	ErrCodeUserMissingFields  UserErrorCode = "USR-010001"
	ErrCodeInvalidRole        UserErrorCode = "USR-010002"
	ErrCodeUserUsernameExists UserErrorCode = "USR-010003"
	ErrCodeUserWeakPassword   UserErrorCode = "USR-010004"
	ErrCodeUserInvalidName    UserErrorCode = "USR-010005"
	ErrCodeInvalidPreferences UserErrorCode = "USR-010006"
	ErrCodeManagedUserMissing UserErrorCode = "USR-020001"
	ErrCodeCannotDeleteSelf   UserErrorCode = "USR-020002"
	ErrCodeUserInternal       UserErrorCode = "USR-090001"
)

// UserError represents a user management error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{Code: code, Message: message, Err: err}
}
