package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConstraintViolation indicates that the store rejected a write because it
// would break a uniqueness or referential rule.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = fmt.Errorf("resource already exists: %w", ErrConstraintViolation)

// ErrBankInUse is returned when deleting a bank that accounts still reference.
var ErrBankInUse = fmt.Errorf("bank is referenced by accounts: %w", ErrConstraintViolation)

// ErrInvalidAmount is returned when a transaction amount is zero.
var ErrInvalidAmount = fmt.Errorf("invalid amount: %w", ErrValidation)

// Not-found variants. Each one also matches ErrNotFound.
var (
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrCategoryNotFound    = fmt.Errorf("category %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
	ErrBankNotFound        = fmt.Errorf("bank %w", ErrNotFound)
)

// ErrCategoryMismatch is the sentinel matched by CategoryMismatchError.
var ErrCategoryMismatch = errors.New("category mismatch")

// CategoryMismatchError reports that the sign of an amount disagrees with
// the direction declared by its category.
type CategoryMismatchError struct {
	Detected string
	Declared string
}

func (e *CategoryMismatchError) Error() string {
	return fmt.Sprintf("category mismatch: amount is %s but category is %s", e.Detected, e.Declared)
}

// Is lets errors.Is(err, ErrCategoryMismatch) match any mismatch.
func (e *CategoryMismatchError) Is(target error) bool {
	return target == ErrCategoryMismatch
}

// AppError is an error carrying the HTTP status a handler should answer with.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err with a status code and a client-facing message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
