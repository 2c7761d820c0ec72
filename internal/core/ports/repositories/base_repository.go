package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// TransactionManager starts units of work against the ledger store.
type TransactionManager interface {
	// Begin starts a new unit of work. Callers must end it with Commit or Rollback.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a unit of work. Every write made through it becomes visible
// together on Commit, or not at all.
type Tx interface {
	Accounts() AccountTxRepository
	Transactions() TransactionTxRepository

	// Commit makes the unit of work durable.
	Commit(ctx context.Context) error

	// Rollback discards the unit of work. It is a no-op after Commit.
	Rollback(ctx context.Context) error
}

// AccountTxRepository is the account surface available inside a unit of work.
type AccountTxRepository interface {
	// FindAccountByIDForUpdate reads an account and holds it against concurrent writers.
	FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error)

	// AdjustBalance adds deltaCents to the stored balance and returns the new balance.
	AdjustBalance(ctx context.Context, accountID string, deltaCents int64) (int64, error)
}

// TransactionTxRepository is the transaction surface available inside a unit of work.
type TransactionTxRepository interface {
	TransactionWriter
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}
