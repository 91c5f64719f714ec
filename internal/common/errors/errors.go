// Package errors provides standardized error handling for the dashboard service.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	ErrCodePropertyNotFound ErrorCode = "PROPERTY_NOT_FOUND"
	ErrCodeRentalNotFound   ErrorCode = "RENTAL_NOT_FOUND"

	ErrCodeInvalidLocationField ErrorCode = "INVALID_LOCATION_FIELD"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeConfirmRequired      ErrorCode = "CONFIRM_REQUIRED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSnapshotSaveFailed       ErrorCode = "SNAPSHOT_SAVE_FAILED"
	ErrCodeSnapshotLoadFailed       ErrorCode = "SNAPSHOT_LOAD_FAILED"
	ErrCodeStoreUnavailable         ErrorCode = "STORE_UNAVAILABLE"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeArchiveDisabled   ErrorCode = "ARCHIVE_DISABLED"

	ErrCodeConsultTimeout  ErrorCode = "CONSULT_TIMEOUT"
	ErrCodeConsultFailed   ErrorCode = "CONSULT_FAILED"
	ErrCodeNewsFetchFailed ErrorCode = "NEWS_FETCH_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// AsStandardError unwraps err into a *StandardError when possible.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSessionNotFoundError creates a non-retryable session lookup error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPropertyNotFoundError creates a non-retryable property lookup error.
func NewPropertyNotFoundError(propertyID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePropertyNotFound,
		Message:   "Collateral property not found",
		Details:   fmt.Sprintf("propertyId: %s", propertyID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRentalNotFoundError creates a non-retryable rental unit lookup error.
func NewRentalNotFoundError(rentalID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRentalNotFound,
		Message:   "Rental unit not found",
		Details:   fmt.Sprintf("rentalId: %s", rentalID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidLocationFieldError creates a non-retryable location field error.
func NewInvalidLocationFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidLocationField,
		Message:   "Unsupported location field",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfirmRequiredError is returned when a destructive call lacks confirm=true.
func NewConfirmRequiredError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfirmRequired,
		Message:   "Operation requires explicit confirmation",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSnapshotSaveFailedError creates a retryable snapshot persistence error.
func NewSnapshotSaveFailedError(sessionID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotSaveFailed,
		Message:   "Session snapshot save failed",
		Details:   fmt.Sprintf("sessionId: %s, error: %s", sessionID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSnapshotLoadFailedError creates a retryable snapshot load error.
func NewSnapshotLoadFailedError(sessionID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotLoadFailed,
		Message:   "Session snapshot load failed",
		Details:   fmt.Sprintf("sessionId: %s, error: %s", sessionID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError creates a retryable widget store error.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Widget store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable archive search error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Archive search query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewArchiveDisabledError is returned when Elasticsearch is not configured.
func NewArchiveDisabledError() *StandardError {
	return &StandardError{
		Code:      ErrCodeArchiveDisabled,
		Message:   "Consultation archive is not enabled",
		Details:   "no elasticsearch endpoint configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConsultTimeoutError creates a retryable consultation timeout error.
func NewConsultTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeConsultTimeout,
		Message:   "AI consultation timeout",
		Details:   "API call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewConsultFailedError creates a retryable consultation error.
func NewConsultFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConsultFailed,
		Message:   "AI consultation API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNewsFetchFailedError creates a non-retryable (returns empty) news fetch error.
func NewNewsFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNewsFetchFailed,
		Message:   "News summary fetch failed",
		Details:   err.Error(),
		Retryable: false, // caller degrades to empty list, no retry
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a non-retryable authorization error.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Authorization failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// httpStatusMapping maps internal error codes to HTTP response status codes.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeSessionNotFound:  http.StatusNotFound,
	ErrCodePropertyNotFound: http.StatusNotFound,
	ErrCodeRentalNotFound:   http.StatusNotFound,

	ErrCodeInvalidLocationField: http.StatusBadRequest,
	ErrCodeValidationFailed:     http.StatusBadRequest,
	ErrCodeConfirmRequired:      http.StatusBadRequest,

	ErrCodeDatabaseConnectionFailed: http.StatusServiceUnavailable,
	ErrCodeSnapshotSaveFailed:       http.StatusServiceUnavailable,
	ErrCodeSnapshotLoadFailed:       http.StatusServiceUnavailable,
	ErrCodeStoreUnavailable:         http.StatusServiceUnavailable,

	ErrCodeSearchQueryFailed: http.StatusBadGateway,
	ErrCodeArchiveDisabled:   http.StatusNotImplemented,

	ErrCodeConsultTimeout:  http.StatusGatewayTimeout,
	ErrCodeConsultFailed:   http.StatusBadGateway,
	ErrCodeNewsFetchFailed: http.StatusBadGateway,

	ErrCodeNotificationSendFailed: http.StatusBadGateway,

	ErrCodeUnauthorized: http.StatusUnauthorized,
}

// HTTPStatus returns the HTTP status code for an error. Unknown codes and
// non-StandardError values map to 500.
func HTTPStatus(err error) int {
	stdErr, ok := AsStandardError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if status, exists := httpStatusMapping[stdErr.Code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryable checks if an error carries a retryable code.
func IsRetryable(err error) bool {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SESSION") || strings.Contains(codeStr, "SNAPSHOT"):
		return "SESSION"
	case strings.Contains(codeStr, "PROPERTY") || strings.Contains(codeStr, "RENTAL") || strings.Contains(codeStr, "LOCATION"):
		return "COLLATERAL"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "STORE"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "ARCHIVE"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "CONSULT") || strings.Contains(codeStr, "NEWS"):
		return "AI"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "CONFIRM"):
		return "VALIDATION"
	case strings.Contains(codeStr, "UNAUTHORIZED"):
		return "AUTH"
	default:
		return "OTHER"
	}
}
