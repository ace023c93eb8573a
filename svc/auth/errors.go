package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/lightsave/pkg/validator"
)

// Store errors.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already taken")
)

// Client-facing messages.
const (
	MsgAllFieldsRequired   = "All fields are required"
	MsgInvalidEmail        = "Invalid email format"
	MsgPasswordTooShort    = "Password must be at least 6 characters long"
	MsgPasswordTooLong     = "Password must be at most 72 bytes long"
	MsgPasswordsMismatch   = "Passwords do not match"
	MsgEmailInUse          = "Email already in use"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgCredentialsRequired = "Email and password are required"
	MsgServerError         = "Server error"
)

// ValidationError reports malformed or missing client input.
type ValidationError struct {
	Message string
	Fields  validator.ValidationErrors
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthError reports a credential mismatch. The message never reveals whether
// the email or the password was wrong.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ServerError wraps an unexpected store, hashing or signing failure. Only
// Message is meant for clients; Err carries the cause for logs.
type ServerError struct {
	Op      string
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

func (e *ServerError) Unwrap() error { return e.Err }

func validationError(msg string, cause error) *ValidationError {
	return &ValidationError{Message: msg, Fields: validator.ExtractValidationErrors(cause)}
}

func serverError(op string, err error) *ServerError {
	return &ServerError{Op: op, Message: MsgServerError, Err: err}
}

func invalidCredentials() *AuthError {
	return &AuthError{Message: MsgInvalidCredentials}
}
