package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// BankReader defines read operations for bank data
type BankReader interface {
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}

// BankWriter defines write operations for bank data
type BankWriter interface {
	SaveBank(ctx context.Context, bank domain.Bank) error
	UpdateBank(ctx context.Context, bank domain.Bank) error
	DeleteBank(ctx context.Context, bankID string) error
}

// BankRepositoryFacade combines all bank-related repository interfaces
type BankRepositoryFacade interface {
	BankReader
	BankWriter
}
