package services

import (
	"context"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
	"github.com/SscSPs/budget_tracker/internal/dto"
)

// BankReaderSvc defines read operations for banks
type BankReaderSvc interface {
	GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}

// BankWriterSvc defines write operations for banks
type BankWriterSvc interface {
	CreateBank(ctx context.Context, req dto.CreateBankRequest) (*domain.Bank, error)
	UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest) (*domain.Bank, error)
	// DeleteBank fails with apperrors.ErrBankInUse while accounts reference the bank.
	DeleteBank(ctx context.Context, bankID string) error
}

// BankSvcFacade combines all bank-related service interfaces
type BankSvcFacade interface {
	BankReaderSvc
	BankWriterSvc
}
