package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Internal wraps an unexpected error as a 500-class domain error while
// keeping the underlying cause for logging.
func Internal(message string, err error) *DomainError {
	return &DomainError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Err:     err,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrEmailExists  = NewDomainError("EMAIL_EXISTS", "email already registered")
	ErrSelfAction   = NewDomainError("SELF_ACTION", "operation not allowed on own account")

	// Authentication errors
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrForbidden           = NewDomainError("FORBIDDEN", "access denied")
	ErrInvalidCredentials  = NewDomainError("INVALID_CREDENTIALS", "invalid credentials")
	ErrAccountInactive     = NewDomainError("ACCOUNT_INACTIVE", "account is deactivated")
	ErrInvalidToken        = NewDomainError("INVALID_TOKEN", "invalid or expired token")
	ErrInvalidRefreshToken = NewDomainError("INVALID_REFRESH_TOKEN", "invalid or expired refresh token")
	ErrInvalidResetToken   = NewDomainError("INVALID_RESET_TOKEN", "invalid or expired reset token")
	ErrResetTokenExpired   = NewDomainError("RESET_TOKEN_EXPIRED", "reset token has expired, request a new one")
	ErrIncorrectPassword   = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")

	// Configuration errors
	ErrConfigNotFound     = NewDomainError("CONFIG_NOT_FOUND", "configuration not found")
	ErrConfigKeyExists    = NewDomainError("CONFIG_KEY_EXISTS", "a configuration with this key already exists")
	ErrInvalidConfigValue = NewDomainError("INVALID_CONFIG_VALUE", "value does not match the declared type")

	// Content errors
	ErrPostNotFound    = NewDomainError("POST_NOT_FOUND", "blog post not found")
	ErrMessageNotFound = NewDomainError("MESSAGE_NOT_FOUND", "contact message not found")

	// Validation errors
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "invalid input")
	ErrPasswordMismatch = NewDomainError("PASSWORD_MISMATCH", "new password and confirmation do not match")

	// Delivery / system errors
	ErrEmailDelivery      = NewDomainError("EMAIL_DELIVERY_FAILED", "failed to send email, try again later")
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "PASSWORD_MISMATCH", "INVALID_CONFIG_VALUE",
		"INVALID_RESET_TOKEN", "RESET_TOKEN_EXPIRED", "INCORRECT_PASSWORD",
		"SELF_ACTION":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "ACCOUNT_INACTIVE",
		"INVALID_TOKEN", "INVALID_REFRESH_TOKEN":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "CONFIG_NOT_FOUND", "POST_NOT_FOUND", "MESSAGE_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "CONFIG_KEY_EXISTS":
		return http.StatusConflict

	// 503 Service Unavailable
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
