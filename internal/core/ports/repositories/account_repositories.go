package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// AccountFilter narrows ListAccounts. Zero values mean "any".
type AccountFilter struct {
	BankID      *string
	WithoutBank bool // only accounts with no bank
	Currency    *domain.Currency
}

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts returns the accounts matching filter ordered by name.
	ListAccounts(ctx context.Context, filter AccountFilter) ([]domain.Account, error)

	// CountAccounts returns the number of stored accounts.
	CountAccounts(ctx context.Context) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account, including its initial balance.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount writes every descriptive field. The balance column is never touched.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes the account and, by cascade, its transactions.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
