package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError by code, so errors.Is(err, ErrInsufficientBalance())
// works across separately constructed values.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Ledger (WAL) ----

func ErrInvalidAmount() *AppError {
	return New("WAL_001", "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrAmountPrecision() *AppError {
	return New("WAL_001", "Amount must have at most two decimal places", http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New("WAL_002", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrUnknownCurrency(code string) *AppError {
	return New("WAL_003", fmt.Sprintf("Unsupported currency %q", code), http.StatusBadRequest)
}

func ErrTopUpDeclined(err error) *AppError {
	return Wrap("WAL_004", "Payment failed. Please try again.", http.StatusPaymentRequired, err)
}

// ---- Cart Ledger (CRT) ----

func ErrInvalidQuantity() *AppError {
	return New("CRT_001", "Quantity must be at least 1", http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("CRT_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrAgeVerificationRequired() *AppError {
	return New("CRT_003", "Age verification required for this product", http.StatusForbidden)
}

// ---- Checkout (CHK) ----

func ErrMissingAddress() *AppError {
	return New("CHK_001", "Please enter a delivery address", http.StatusBadRequest)
}

func ErrEmptyCart() *AppError {
	return New("CHK_002", "Your cart is empty", http.StatusUnprocessableEntity)
}

func ErrUnknownDeliveryOption(option string) *AppError {
	return New("CHK_003", fmt.Sprintf("Unknown delivery option %q", option), http.StatusBadRequest)
}

// ---- Notifications (NTF) ----

func ErrNotificationNotFound() *AppError {
	return New("NTF_001", "Notification not found", http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrUnknownEmail() *AppError {
	return New("AUTH_004", "No account found with this email", http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrCacheError(err error) *AppError {
	return Wrap("SYS_002", "Cache unavailable", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}

// PayloadTooLarge rejects a request body above the configured cap.
func PayloadTooLarge() *AppError {
	return New("REQ_002", "Request body too large", http.StatusRequestEntityTooLarge)
}
