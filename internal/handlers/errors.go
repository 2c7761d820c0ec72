package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error codes sent alongside the message.
const (
	codeInvalidAmount       = "INVALID_AMOUNT"
	codeCategoryMismatch    = "CATEGORY_MISMATCH"
	codeValidation          = "VALIDATION_ERROR"
	codeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	codeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	codeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	codeBankNotFound        = "BANK_NOT_FOUND"
	codeNotFound            = "NOT_FOUND"
	codeBankInUse           = "BANK_IN_USE"
	codeDuplicate           = "DUPLICATE"
	codeConstraint          = "CONSTRAINT_VIOLATION"
	codeInternal            = "INTERNAL_ERROR"
)

// classify maps an error onto a status and a code. The most specific
// sentinel wins, so the order of the cases matters.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return http.StatusBadRequest, codeInvalidAmount
	case errors.Is(err, apperrors.ErrCategoryMismatch):
		return http.StatusBadRequest, codeCategoryMismatch
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, codeValidation
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return http.StatusNotFound, codeAccountNotFound
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		return http.StatusNotFound, codeCategoryNotFound
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		return http.StatusNotFound, codeTransactionNotFound
	case errors.Is(err, apperrors.ErrBankNotFound):
		return http.StatusNotFound, codeBankNotFound
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, apperrors.ErrBankInUse):
		return http.StatusConflict, codeBankInUse
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, codeDuplicate
	case errors.Is(err, apperrors.ErrConstraintViolation):
		return http.StatusConflict, codeConstraint
	}
	return http.StatusInternalServerError, codeInternal
}

// respondWithError writes err as JSON. Server-side failures are logged and
// their details are not leaked; fallback is sent instead.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback, Code: code})
		return
	}
	logger.Warn("Request rejected", slog.String("code", code), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// respondBindError answers a request whose body or query could not be bound.
// Amount decoding failures keep their own code.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	code := codeValidation
	if errors.Is(err, apperrors.ErrInvalidAmount) {
		code = codeInvalidAmount
	}
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: code})
}
