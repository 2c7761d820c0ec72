package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
	"github.com/google/uuid"
)

type bankService struct {
	BaseService
	bankRepo    portsrepo.BankRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewBankService creates the bank service.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade, accountRepo portsrepo.AccountReader, opts ...Option) portssvc.BankSvcFacade {
	return &bankService{
		BaseService: newBaseService(opts),
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
	}
}

func (s *bankService) CreateBank(ctx context.Context, req dto.CreateBankRequest) (*domain.Bank, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	bank := domain.Bank{
		BankID:      uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   s.Now(),
	}
	if err := s.bankRepo.SaveBank(ctx, bank); err != nil {
		s.LogError(ctx, err, "Failed to save bank", slog.String("name", bank.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Bank created", slog.String("bank_id", bank.BankID))
	return &bank, nil
}

func (s *bankService) GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	return s.bankRepo.FindBankByID(ctx, bankID)
}

func (s *bankService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	banks, err := s.bankRepo.ListBanks(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list banks")
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

func (s *bankService) UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest) (*domain.Bank, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}
	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, err
	}

	bank.Name = req.Name
	bank.Description = req.Description
	if err := s.bankRepo.UpdateBank(ctx, *bank); err != nil {
		s.LogError(ctx, err, "Failed to update bank", slog.String("bank_id", bankID))
		return nil, err
	}
	return bank, nil
}

// DeleteBank refuses to orphan accounts even though the store would clear
// their reference on its own.
func (s *bankService) DeleteBank(ctx context.Context, bankID string) error {
	if _, err := s.bankRepo.FindBankByID(ctx, bankID); err != nil {
		return err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{BankID: &bankID})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for bank", slog.String("bank_id", bankID))
		return err
	}
	if len(accounts) > 0 {
		s.LogInfo(ctx, "Refusing to delete bank in use", slog.String("bank_id", bankID), slog.Int("accounts", len(accounts)))
		return fmt.Errorf("%w: %d account(s) still reference it", apperrors.ErrBankInUse, len(accounts))
	}

	if err := s.bankRepo.DeleteBank(ctx, bankID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete bank", slog.String("bank_id", bankID))
		}
		return err
	}
	s.LogInfo(ctx, "Bank deleted", slog.String("bank_id", bankID))
	return nil
}
