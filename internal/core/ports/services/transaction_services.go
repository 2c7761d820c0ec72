package services

import (
	"context"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/dto"
)

// TransactionResult is a written transaction together with the balance of
// every account the write touched, keyed by account ID.
type TransactionResult struct {
	Transaction domain.Transaction
	Balances    map[string]int64
}

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the balance-preserving mutations. Each one
// writes the transaction and the affected balances atomically.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*TransactionResult, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*TransactionResult, error)
	// DeleteTransaction is a no-op for unknown IDs.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
