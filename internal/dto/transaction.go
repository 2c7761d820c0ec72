package dto

import (
	"time"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// DefaultTransactionPageSize is the page size used when listing without a limit.
const DefaultTransactionPageSize = 200

// CreateTransactionRequest defines the data needed to record a transaction.
// Date defaults to the current time when omitted.
type CreateTransactionRequest struct {
	AccountID   string     `json:"accountID" binding:"required"`
	CategoryID  string     `json:"categoryID" binding:"required"`
	AmountCents Cents      `json:"amountCents"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
}

// UpdateTransactionRequest changes a transaction. Nil fields keep their stored value.
type UpdateTransactionRequest struct {
	AccountID   *string    `json:"accountID"`
	CategoryID  *string    `json:"categoryID"`
	AmountCents *Cents     `json:"amountCents"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
}

// ListTransactionsParams defines query parameters for listing transactions.
// From is inclusive and To is exclusive. Both accept RFC 3339 or YYYY-MM-DD.
type ListTransactionsParams struct {
	AccountID  *string `form:"accountID"`
	CategoryID *string `form:"categoryID"`
	From       string  `form:"from"`
	To         string  `form:"to"`
	Limit      int     `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset     int     `form:"offset" binding:"omitempty,min=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string    `json:"transactionID"`
	AccountID     string    `json:"accountID"`
	CategoryID    *string   `json:"categoryID,omitempty"`
	AmountCents   int64     `json:"amountCents"`
	Date          time.Time `json:"date"`
	Description   *string   `json:"description,omitempty"`
	TransferID    *string   `json:"transferID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TransactionMutationResponse pairs a transaction with the balance of every
// account the write touched.
type TransactionMutationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balances    map[string]int64    `json:"balances"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		AmountCents:   t.AmountCents,
		Date:          t.Date,
		Description:   t.Description,
		TransferID:    t.TransferID,
		CreatedAt:     t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
