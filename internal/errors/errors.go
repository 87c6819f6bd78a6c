// Package errors provides the typed error surface of the ledger core.
// Services return AppErrors; the presentation layer is the only place
// they are translated into user-visible responses, and internal causes
// are never leaked to clients.
package errors

import "net/http"

// AppError is a structured application error with a stable code,
// human-readable message, HTTP status code, and optional internal cause.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal cause for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying an internal cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a more specific message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Validation errors: bad input shape or range, rejected before any write.
var (
	ErrInvalidInput  = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidKind   = &AppError{Code: "INVALID_TRANSACTION_KIND", Message: "Unsupported transaction kind", StatusCode: http.StatusBadRequest}
	ErrInvalidMethod = &AppError{Code: "INVALID_PAYMENT_METHOD", Message: "Unsupported payment method", StatusCode: http.StatusBadRequest}
	ErrInvalidDate   = &AppError{Code: "INVALID_DATE", Message: "Date must be in YYYY-MM-DD format", StatusCode: http.StatusBadRequest}
)

// Business-rule violations: surfaced only from inside the atomic write
// path, always after a full rollback.
var (
	ErrCreditLimitExceeded = &AppError{Code: "CREDIT_LIMIT_EXCEEDED", Message: "Credit limit exceeded", StatusCode: http.StatusConflict}
)

// Not-found and store-integrity errors.
var (
	ErrNotFound            = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrPlanNotFound        = &AppError{Code: "PLAN_NOT_FOUND", Message: "Savings plan not found", StatusCode: http.StatusNotFound}
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrRecurringNotFound   = &AppError{Code: "RECURRING_NOT_FOUND", Message: "Recurring charge not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrCreditConfigMissing = &AppError{Code: "CREDIT_CONFIG_MISSING", Message: "Credit configuration is missing; the store is uninitialized or corrupted", StatusCode: http.StatusInternalServerError}
)

// Authentication errors (PIN gate and session tokens).
var (
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidPIN     = &AppError{Code: "INVALID_PIN", Message: "Invalid PIN", StatusCode: http.StatusUnauthorized}
	ErrPINNotSet      = &AppError{Code: "PIN_NOT_SET", Message: "No PIN has been configured", StatusCode: http.StatusConflict}
	ErrPINAlreadySet  = &AppError{Code: "PIN_ALREADY_SET", Message: "A PIN is already configured", StatusCode: http.StatusConflict}
	ErrRecoveryFailed = &AppError{Code: "RECOVERY_FAILED", Message: "Recovery answer does not match", StatusCode: http.StatusUnauthorized}
)

// Storage failures: I/O or constraint errors from the underlying engine,
// always rolled back and re-raised, never silently swallowed.
var (
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrBackupFailed   = &AppError{Code: "BACKUP_FAILED", Message: "Database backup failed", StatusCode: http.StatusInternalServerError}
)
