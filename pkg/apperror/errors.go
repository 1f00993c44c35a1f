package apperror

import (
	"errors"
	"fmt"
)

// AppError is a coded domain error surfaced to the presentation layer.
type AppError struct {
	Code    string
	Message string
	Err     error // Wrapped internal error (not shown to the user)
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

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code carried by err, or "" when err is not an AppError.
// Callers branch on codes rather than matching message strings.
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// ---- Accounts (ACCT) ----

func ErrAccountNotFound(id int64) *AppError {
	return New("ACCT_001", fmt.Sprintf("account %d not found", id))
}

// ---- Authorization (AUTH) ----

func ErrInvalidPIN() *AppError {
	return New("AUTH_001", "invalid PIN")
}

// ---- Currencies (CUR) ----

func ErrInvalidCurrency(code string) *AppError {
	return New("CUR_001", fmt.Sprintf("unsupported currency: %s", code))
}

// ErrCurrencyBalanceNotFound means the account has never held the currency.
// Distinct from a zero balance.
func ErrCurrencyBalanceNotFound(code string) *AppError {
	return New("CUR_002", fmt.Sprintf("no balance held in %s", code))
}

// ---- Money movement (PAY) ----

func ErrInvalidAmount() *AppError {
	return New("PAY_001", "invalid amount")
}

func ErrInsufficientFunds() *AppError {
	return New("PAY_002", "insufficient balance")
}

// ---- Transfers (XFER) ----

func ErrSameAccount() *AppError {
	return New("XFER_001", "transfer source and destination are the same account")
}

// ---- System (SYS) ----

// InternalError wraps an unexpected internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "internal error", err)
}
